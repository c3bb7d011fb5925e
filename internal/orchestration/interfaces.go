//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import "context"

// ReadyFunc receives a subsystem's readiness signal. A nil err means the
// subsystem initialized successfully; any non-nil err, even one with an empty
// message, is a failure.
type ReadyFunc func(name string, err error)

// Subsystem is the capability contract every independently-initializing unit
// of an entity must satisfy.
type Subsystem interface {
	// Name identifies the subsystem in outcomes and logs.
	Name() string
	// Subscribe registers fn for the readiness signal and returns a function
	// that removes the registration. The returned function must be idempotent.
	Subscribe(fn ReadyFunc) (cancel func())
	// StartInit begins the subsystem's own initialization. It must not block
	// the caller; completion is reported through the readiness signal.
	StartInit(ctx context.Context)
}

// Handle binds a roster slot name to the subsystem filling it.
type Handle struct {
	Name      string
	Subsystem Subsystem
}

// HandlesOf builds handles named after each subsystem, preserving order.
func HandlesOf(subsystems ...Subsystem) []Handle {
	handles := make([]Handle, 0, len(subsystems))
	for _, s := range subsystems {
		handles = append(handles, Handle{Name: s.Name(), Subsystem: s})
	}
	return handles
}

// Disposition classifies how the coordinator treated one readiness signal.
type Disposition string

const (
	// DispositionReady is an accepted success signal.
	DispositionReady Disposition = "ready"
	// DispositionFailed is an accepted failure signal.
	DispositionFailed Disposition = "failed"
	// DispositionLate is a signal that arrived after the attempt finalized.
	DispositionLate Disposition = "late"
	// DispositionDuplicate is a repeated signal from a subsystem that had
	// already reported during the attempt.
	DispositionDuplicate Disposition = "duplicate"
)

// Observer receives coordination lifecycle events, typically to export
// metrics. Calls are made outside the coordinator's critical section and may
// arrive from any goroutine.
type Observer interface {
	AttemptStarted(entity string, subsystems int)
	SignalObserved(entity, subsystem string, d Disposition)
	AttemptFinished(entity string, outcome Outcome)
}

// NullObserver is a no-op Observer.
type NullObserver struct{}

// AttemptStarted does nothing.
func (NullObserver) AttemptStarted(string, int) {}

// SignalObserved does nothing.
func (NullObserver) SignalObserved(string, string, Disposition) {}

// AttemptFinished does nothing.
func (NullObserver) AttemptFinished(string, Outcome) {}

// MultiObserver forwards every event to each of its observers in order.
type MultiObserver []Observer

// Observers combines observers into one, skipping nil entries.
func Observers(obs ...Observer) Observer {
	var m MultiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

// AttemptStarted forwards to every observer.
func (m MultiObserver) AttemptStarted(entity string, subsystems int) {
	for _, o := range m {
		o.AttemptStarted(entity, subsystems)
	}
}

// SignalObserved forwards to every observer.
func (m MultiObserver) SignalObserved(entity, subsystem string, d Disposition) {
	for _, o := range m {
		o.SignalObserved(entity, subsystem, d)
	}
}

// AttemptFinished forwards to every observer.
func (m MultiObserver) AttemptFinished(entity string, outcome Outcome) {
	for _, o := range m {
		o.AttemptFinished(entity, outcome)
	}
}
