package npc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agbru/npcready/internal/config"
	"github.com/agbru/npcready/internal/orchestration"
)

var errNotInitialized = errors.New("npc: Initialize has not been called")

// ReadyListener receives the outcome message of an initialization: empty on
// success, the failure or timeout description otherwise.
type ReadyListener func(message string)

// Controller owns the readiness of one NPC.
type Controller struct {
	roster   *Roster
	coord    *orchestration.Coordinator
	deadline time.Duration

	mu        sync.Mutex
	listeners map[uint64]ReadyListener
	nextID    uint64
	done      chan struct{}
	outcome   orchestration.Outcome
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithDeadline overrides the roster's deadline.
func WithDeadline(d time.Duration) ControllerOption {
	return func(c *Controller) { c.deadline = d }
}

// NewController creates a controller for the roster. coordOpts are passed to
// the underlying coordinator. The deadline defaults to the roster's, then to
// config.DefaultDeadline.
func NewController(roster *Roster, coordOpts []orchestration.Option, opts ...ControllerOption) *Controller {
	c := &Controller{
		roster:    roster,
		coord:     orchestration.NewCoordinator(roster.Entity, coordOpts...),
		deadline:  roster.Deadline,
		listeners: make(map[uint64]ReadyListener),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deadline <= 0 {
		c.deadline = config.DefaultDeadline
	}
	return c
}

// Coordinator exposes the underlying coordinator, e.g. as a readiness probe.
func (c *Controller) Coordinator() *orchestration.Coordinator { return c.coord }

// Deadline returns the deadline Initialize will use.
func (c *Controller) Deadline() time.Duration { return c.deadline }

// OnReady registers a listener for the next outcome and returns a function
// that removes it.
func (c *Controller) OnReady(fn ReadyListener) (remove func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Initialize starts one readiness attempt for every subsystem of the roster.
// It returns once the attempt is under way; use Wait or OnReady for the
// result.
func (c *Controller) Initialize(ctx context.Context) error {
	done := make(chan struct{})
	err := c.coord.Start(ctx, c.roster.Handles(), c.deadline, func(o orchestration.Outcome) {
		c.finish(done, o)
	})
	if err != nil {
		return err
	}
	// done may already be closed when the attempt completed inside Start.
	c.mu.Lock()
	c.done = done
	c.mu.Unlock()
	return nil
}

func (c *Controller) finish(done chan struct{}, o orchestration.Outcome) {
	c.mu.Lock()
	c.outcome = o
	listeners := make([]ReadyListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()
	close(done)

	msg := o.String()
	for _, fn := range listeners {
		fn(msg)
	}
}

// Wait blocks until the current attempt finalizes or ctx ends.
func (c *Controller) Wait(ctx context.Context) (orchestration.Outcome, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return orchestration.Outcome{}, errNotInitialized
	}
	select {
	case <-done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.outcome, nil
	case <-ctx.Done():
		return orchestration.Outcome{}, ctx.Err()
	}
}

// IsReady reports whether the latest initialization succeeded.
func (c *Controller) IsReady() bool { return c.coord.Ready() }
