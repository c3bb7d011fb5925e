package orchestration

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	apperrors "github.com/agbru/npcready/internal/errors"
)

// ErrGuardUsed is returned by Arm on a guard that was already armed or disarmed.
var ErrGuardUsed = errors.New("deadline guard already used")

type guardState int

const (
	guardIdle guardState = iota
	guardArmed
	guardFired
	guardDisarmed
)

// DeadlineGuard is a single-shot, cancellable timer. Once Disarm returns, the
// expiry callback is guaranteed not to start, even if the underlying timer
// had already fired and its callback was waiting for the lock.
type DeadlineGuard struct {
	clock clockwork.Clock

	mu    sync.Mutex
	state guardState
	timer clockwork.Timer
}

// NewDeadlineGuard creates a guard driven by clock. A nil clock uses the
// real wall clock.
func NewDeadlineGuard(clock clockwork.Clock) *DeadlineGuard {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DeadlineGuard{clock: clock}
}

// Arm schedules onExpire to run once after d. A guard can be armed only once.
func (g *DeadlineGuard) Arm(d time.Duration, onExpire func()) error {
	if d <= 0 {
		return apperrors.ValidationError{Field: "deadline", Message: "must be positive"}
	}
	if onExpire == nil {
		return apperrors.ValidationError{Field: "onExpire", Message: "must not be nil"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != guardIdle {
		return ErrGuardUsed
	}
	g.state = guardArmed
	g.timer = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		if g.state != guardArmed {
			g.mu.Unlock()
			return
		}
		g.state = guardFired
		g.mu.Unlock()
		onExpire()
	})
	return nil
}

// Disarm cancels a pending expiry and reports whether it did so. It is safe
// to call any number of times, before Arm, or after the guard fired.
func (g *DeadlineGuard) Disarm() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case guardArmed:
		g.state = guardDisarmed
		g.timer.Stop()
		return true
	case guardIdle:
		g.state = guardDisarmed
	}
	return false
}

// Armed reports whether an expiry is currently pending.
func (g *DeadlineGuard) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == guardArmed
}

// Fired reports whether the expiry callback ran (or is running).
func (g *DeadlineGuard) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == guardFired
}
