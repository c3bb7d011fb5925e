package orchestration

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/npcready/internal/errors"
	"github.com/agbru/npcready/internal/logging"
)

const tracerName = "github.com/agbru/npcready/internal/orchestration"

// ErrAttemptInProgress is returned by Start while a previous attempt has not
// finalized yet.
var ErrAttemptInProgress = errors.New("coordination attempt already in progress")

// Coordinator drives readiness attempts for a single entity.
type Coordinator struct {
	entity   string
	clock    clockwork.Clock
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer

	mu      sync.Mutex
	current *attempt
	seq     uint64
}

// Option configures a Coordinator during construction.
type Option func(*Coordinator)

// WithClock sets the clock used for the deadline and elapsed time.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Coordinator) { c.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithObserver sets the lifecycle observer, typically a metrics exporter.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithTracer overrides the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Coordinator) { c.tracer = t }
}

// NewCoordinator creates a coordinator for the named entity.
func NewCoordinator(entity string, opts ...Option) *Coordinator {
	c := &Coordinator{entity: entity}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	if c.observer == nil {
		c.observer = NullObserver{}
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Entity returns the name of the entity being coordinated.
func (c *Coordinator) Entity() string { return c.entity }

// Start begins a coordination attempt and returns without waiting for it.
//
// Every handle is subscribed before any subsystem is started, so a subsystem
// that signals from inside StartInit is still observed. The deadline is armed
// once all subsystems have been started. onDone is called exactly once, from
// whichever goroutine finalizes the attempt; with zero handles that happens
// synchronously, before Start returns, with a Success outcome.
//
// Every StartInit call receives a context derived from ctx that carries the
// attempt's trace span and is cancelled when the attempt finalizes, so work
// left running by a finished attempt can stop and can no longer signal.
func (c *Coordinator) Start(ctx context.Context, handles []Handle, deadline time.Duration, onDone func(Outcome)) error {
	if deadline <= 0 {
		return apperrors.ValidationError{Field: "deadline", Message: fmt.Sprintf("must be positive, got %s", deadline)}
	}
	if onDone == nil {
		return apperrors.ValidationError{Field: "onDone", Message: "must not be nil"}
	}
	for i, h := range handles {
		if h.Subsystem == nil {
			return apperrors.ValidationError{Field: fmt.Sprintf("handles[%d]", i), Message: "subsystem must not be nil"}
		}
	}

	c.mu.Lock()
	if c.current != nil && !c.current.isFinalized() {
		c.mu.Unlock()
		return ErrAttemptInProgress
	}
	c.seq++
	ctx, span := c.tracer.Start(ctx, "readiness.attempt", trace.WithAttributes(
		attribute.String("npc.entity", c.entity),
		attribute.Int("readiness.subsystems", len(handles)),
		attribute.Int64("readiness.attempt", int64(c.seq)),
		attribute.String("readiness.deadline", deadline.String()),
	))
	ctx, cancelAttempt := context.WithCancel(ctx)
	a := &attempt{
		coord:    c,
		id:       c.seq,
		handles:  slices.Clone(handles),
		reported: make([]bool, len(handles)),
		pending:  len(handles),
		deadline: deadline,
		guard:    NewDeadlineGuard(c.clock),
		started:  c.clock.Now(),
		span:     span,
		onDone:   onDone,
		cancel:   cancelAttempt,
	}
	c.current = a
	c.mu.Unlock()

	c.observer.AttemptStarted(c.entity, len(handles))
	c.logger.Info("readiness attempt started",
		logging.String("entity", c.entity),
		logging.Uint64("attempt", a.id),
		logging.Int("subsystems", len(handles)),
		logging.Duration("deadline", deadline))

	if len(handles) == 0 {
		a.mu.Lock()
		notify := a.finalizeLocked(Outcome{Kind: OutcomeSuccess, Completed: []string{}})
		a.mu.Unlock()
		notify()
		return nil
	}

	for i, h := range handles {
		cancel := h.Subsystem.Subscribe(a.handler(i))
		a.mu.Lock()
		if a.finalized {
			a.mu.Unlock()
			cancel()
			continue
		}
		a.cancels = append(a.cancels, cancel)
		a.mu.Unlock()
	}

	for _, h := range handles {
		if a.isFinalized() {
			break
		}
		h.Subsystem.StartInit(ctx)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return nil
	}
	// Arm cannot fail here: the guard is fresh and both arguments are valid.
	_ = a.guard.Arm(deadline, a.onDeadline)
	return nil
}

// Outcome returns the outcome of the most recent attempt. ok is false when no
// attempt was started or the latest one has not finalized yet.
func (c *Coordinator) Outcome() (outcome Outcome, ok bool) {
	c.mu.Lock()
	a := c.current
	c.mu.Unlock()
	if a == nil {
		return Outcome{}, false
	}
	return a.result()
}

// Ready reports whether the most recent attempt finished successfully.
func (c *Coordinator) Ready() bool {
	o, ok := c.Outcome()
	return ok && o.Success()
}

// attempt is the state of one Start call. Every read-modify-check-finalize
// sequence runs under mu; onDone and observer calls run after it is released.
type attempt struct {
	coord    *Coordinator
	id       uint64
	handles  []Handle
	deadline time.Duration
	guard    *DeadlineGuard
	started  time.Time
	span     trace.Span
	onDone   func(Outcome)

	// cancel ends the context handed to StartInit.
	cancel context.CancelFunc

	mu        sync.Mutex
	reported  []bool
	pending   int
	completed []string
	cancels   []func()
	finalized bool
	outcome   Outcome
}

func (a *attempt) handler(idx int) ReadyFunc {
	return func(name string, err error) {
		a.onSignal(idx, name, err)
	}
}

func (a *attempt) onSignal(idx int, name string, err error) {
	c := a.coord
	if name == "" {
		name = a.handles[idx].Name
	}

	a.mu.Lock()
	switch {
	case a.finalized:
		a.mu.Unlock()
		a.ignore(name, DispositionLate, err)
		return
	case a.reported[idx]:
		a.mu.Unlock()
		a.ignore(name, DispositionDuplicate, err)
		return
	}
	a.reported[idx] = true

	if err != nil {
		a.span.AddEvent("subsystem.failed", trace.WithAttributes(
			attribute.String("subsystem", name),
			attribute.String("error", err.Error())))
		a.guard.Disarm()
		notify := a.finalizeLocked(Outcome{
			Kind:      OutcomeFailure,
			Subsystem: name,
			Cause:     err,
			Completed: slices.Clone(a.completed),
		})
		a.mu.Unlock()
		c.observer.SignalObserved(c.entity, name, DispositionFailed)
		notify()
		return
	}

	a.completed = append(a.completed, name)
	a.pending--
	a.span.AddEvent("subsystem.ready", trace.WithAttributes(attribute.String("subsystem", name)))
	pending := a.pending
	var notify func()
	if pending == 0 {
		a.guard.Disarm()
		notify = a.finalizeLocked(Outcome{Kind: OutcomeSuccess, Completed: slices.Clone(a.completed)})
	}
	a.mu.Unlock()

	c.observer.SignalObserved(c.entity, name, DispositionReady)
	c.logger.Debug("subsystem ready",
		logging.String("entity", c.entity),
		logging.String("subsystem", name),
		logging.Int("pending", pending))
	if notify != nil {
		notify()
	}
}

func (a *attempt) onDeadline() {
	a.mu.Lock()
	if a.finalized {
		a.mu.Unlock()
		return
	}
	a.span.AddEvent("deadline.expired")
	notify := a.finalizeLocked(Outcome{Kind: OutcomeTimedOut, Completed: slices.Clone(a.completed)})
	a.mu.Unlock()
	notify()
}

// finalizeLocked cancels the attempt context, tears down every subscription,
// then sets finalized and records the outcome. It must be called with a.mu
// held and returns the notification to run once the lock is released.
//
// The context is cancelled first: a subsystem raising through
// Signal.RaiseContext after this point reaches nobody, including the
// subscribers of a later attempt.
func (a *attempt) finalizeLocked(o Outcome) func() {
	a.cancel()
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
	a.finalized = true

	o.Deadline = a.deadline
	o.Elapsed = a.coord.clock.Since(a.started)
	a.outcome = o

	return func() { a.notify(o) }
}

func (a *attempt) notify(o Outcome) {
	c := a.coord
	fields := []logging.Field{
		logging.String("entity", c.entity),
		logging.Uint64("attempt", a.id),
		logging.String("outcome", o.Kind.String()),
		logging.Duration("elapsed", o.Elapsed),
		logging.Strings("completed", o.Completed),
	}
	a.span.SetAttributes(attribute.String("readiness.outcome", o.Kind.String()))
	switch o.Kind {
	case OutcomeSuccess:
		a.span.SetStatus(codes.Ok, "")
		c.logger.Info("all subsystems ready", fields...)
	case OutcomeFailure:
		a.span.RecordError(o.Cause)
		a.span.SetStatus(codes.Error, o.String())
		c.logger.Error("readiness failed", o.Err(), append(fields, logging.String("subsystem", o.Subsystem))...)
	case OutcomeTimedOut:
		a.span.SetStatus(codes.Error, o.String())
		c.logger.Error("readiness deadline exceeded", o.Err(), fields...)
	}
	a.span.End()

	c.observer.AttemptFinished(c.entity, o)
	a.onDone(o)
}

func (a *attempt) ignore(name string, d Disposition, err error) {
	c := a.coord
	c.observer.SignalObserved(c.entity, name, d)
	c.logger.Debug("readiness signal ignored",
		logging.String("entity", c.entity),
		logging.String("subsystem", name),
		logging.String("reason", string(d)),
		logging.Err(err))
}

func (a *attempt) isFinalized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finalized
}

func (a *attempt) result() (Outcome, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outcome, a.finalized
}
