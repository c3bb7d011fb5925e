package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/npcready/internal/orchestration"
)

const (
	// RefreshRate is the spinner animation interval.
	RefreshRate = 120 * time.Millisecond
	// ProgressBarWidth is the width in characters of the readiness bar.
	ProgressBarWidth = 24
)

// FormatExecutionDuration formats a duration for display: microseconds below
// a millisecond, milliseconds below a second, the default form otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the terminal spinner so progress display can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], RefreshRate, options...)
	return &realSpinner{s}
}

// ReadinessProgress shows a spinner with a readiness bar while an attempt
// runs. It implements orchestration.Observer and is fed by the coordinator.
type ReadinessProgress struct {
	spinner Spinner

	mu      sync.Mutex
	total   int
	ready   int
	last    string
	stopped bool
}

var _ orchestration.Observer = (*ReadinessProgress)(nil)

// NewReadinessProgress creates a progress display writing to out.
func NewReadinessProgress(out io.Writer) *ReadinessProgress {
	return &ReadinessProgress{spinner: newSpinner(spinner.WithWriter(out))}
}

// AttemptStarted resets the counters and starts the spinner.
func (p *ReadinessProgress) AttemptStarted(_ string, subsystems int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.ready, p.last, p.stopped = subsystems, 0, "", false
	p.spinner.UpdateSuffix(p.suffixLocked())
	p.spinner.Start()
}

// SignalObserved advances the bar for accepted ready signals.
func (p *ReadinessProgress) SignalObserved(_ string, subsystem string, d orchestration.Disposition) {
	if d != orchestration.DispositionReady {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.ready++
	p.last = subsystem
	p.spinner.UpdateSuffix(p.suffixLocked())
}

// AttemptFinished stops the spinner.
func (p *ReadinessProgress) AttemptFinished(string, orchestration.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	p.spinner.Stop()
}

func (p *ReadinessProgress) suffixLocked() string {
	progress := 1.0
	if p.total > 0 {
		progress = float64(p.ready) / float64(p.total)
	}
	suffix := fmt.Sprintf(" %s %d/%d ready", progressBar(progress, ProgressBarWidth), p.ready, p.total)
	if p.last != "" {
		suffix += " (" + p.last + ")"
	}
	return suffix
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
