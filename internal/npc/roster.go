package npc

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/agbru/npcready/internal/config"
	"github.com/agbru/npcready/internal/logging"
	"github.com/agbru/npcready/internal/orchestration"
)

// CanonicalSubsystems lists the NPC subsystems in start order.
var CanonicalSubsystems = []string{
	"AnimationController",
	"AttackSystem",
	CharacterDataName,
	"AIBrain",
	"MoveSystem",
	"BodySystem",
}

// characterTables are the tables CharacterData loads in parallel.
var characterTables = []string{"stats", "inventory", "dialogue"}

const defaultStep = 100 * time.Millisecond

// DefaultRoster describes the canonical NPC with every subsystem healthy,
// ready at staggered delays well inside the default deadline.
func DefaultRoster() *config.Roster {
	r := &config.Roster{Entity: config.DefaultEntity}
	for i, name := range CanonicalSubsystems {
		r.Subsystems = append(r.Subsystems, config.SubsystemSpec{
			Name:  name,
			Delay: time.Duration(i+1) * defaultStep,
		})
	}
	return r
}

// Roster is a built entity: its name and its subsystems in start order.
type Roster struct {
	Entity     string
	Deadline   time.Duration
	Subsystems []orchestration.Subsystem
}

// Build instantiates the subsystems described by spec. CharacterData entries
// that signal normally are backed by parallel table loaders.
func Build(spec *config.Roster, clock clockwork.Clock) *Roster {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r := &Roster{Entity: spec.Entity, Deadline: spec.Deadline}
	for _, s := range spec.Subsystems {
		if s.Name == CharacterDataName && !s.Silent && !s.Duplicate {
			r.Subsystems = append(r.Subsystems, buildCharacterData(s, clock))
			continue
		}
		r.Subsystems = append(r.Subsystems, NewSimulated(s, clock))
	}
	return r
}

// buildCharacterData splits the entry's delay across the table loaders; the
// last table carries the configured failure, if any.
func buildCharacterData(s config.SubsystemSpec, clock clockwork.Clock) *CharacterData {
	loaders := make([]Loader, len(characterTables))
	for i, table := range characterTables {
		var fail error
		if s.Fail != "" && i == len(characterTables)-1 {
			fail = errors.New(s.Fail)
		}
		loaders[i] = DelayLoader(table, s.Delay, clock, fail)
	}
	return NewCharacterData(s.Name, loaders...)
}

// Handles returns the coordinator handles in start order.
func (r *Roster) Handles() []orchestration.Handle {
	return orchestration.HandlesOf(r.Subsystems...)
}

// Names returns the subsystem names in start order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.Subsystems))
	for i, s := range r.Subsystems {
		names[i] = s.Name()
	}
	return names
}

// SetLogger routes the readiness-signal diagnostics of every subsystem that
// supports it to logger.
func (r *Roster) SetLogger(logger logging.Logger) {
	for _, s := range r.Subsystems {
		if l, ok := s.(interface{ SetLogger(logging.Logger) }); ok {
			l.SetLogger(logger)
		}
	}
}
