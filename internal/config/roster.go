package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/npcready/internal/errors"
)

// DefaultEntity names the entity when a roster does not.
const DefaultEntity = "npc"

// SubsystemSpec describes one simulated subsystem in a roster file.
type SubsystemSpec struct {
	Name string `yaml:"name"`
	// Delay is how long the subsystem takes before it signals.
	Delay time.Duration `yaml:"delay"`
	// Fail, when non-empty, makes the subsystem signal this error message.
	Fail string `yaml:"fail,omitempty"`
	// Silent subsystems never signal.
	Silent bool `yaml:"silent,omitempty"`
	// Duplicate subsystems signal twice.
	Duplicate bool `yaml:"duplicate,omitempty"`
}

// Roster is the parsed content of a roster file.
type Roster struct {
	Entity     string          `yaml:"entity"`
	Deadline   time.Duration   `yaml:"deadline,omitempty"`
	Subsystems []SubsystemSpec `yaml:"subsystems"`
}

// LoadRoster reads and validates a YAML roster from path.
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewConfigError("open roster: %v", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewConfigError("read roster: %v", err)
	}
	return ParseRoster(content)
}

// ParseRoster decodes a roster document. Unknown keys are rejected.
func ParseRoster(content []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("parse roster: %v", err)
	}
	if r.Entity == "" {
		r.Entity = DefaultEntity
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks names are present and unique and durations non-negative.
// An empty subsystem list is valid and resolves immediately.
func (r *Roster) Validate() error {
	if r.Deadline < 0 {
		return apperrors.NewConfigError("roster deadline must not be negative, got %s", r.Deadline)
	}
	seen := make(map[string]struct{}, len(r.Subsystems))
	for i, s := range r.Subsystems {
		if s.Name == "" {
			return apperrors.NewConfigError("roster subsystem %d has no name", i)
		}
		if _, dup := seen[s.Name]; dup {
			return apperrors.NewConfigError("roster subsystem %q listed twice", s.Name)
		}
		seen[s.Name] = struct{}{}
		if s.Delay < 0 {
			return apperrors.NewConfigError("roster subsystem %q has negative delay %s", s.Name, s.Delay)
		}
	}
	return nil
}

// Marshal renders the roster as YAML.
func (r *Roster) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal roster: %w", err)
	}
	return out, nil
}
