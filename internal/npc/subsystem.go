package npc

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/agbru/npcready/internal/config"
	"github.com/agbru/npcready/internal/orchestration"
)

// Simulated is a subsystem whose readiness behaviour is scripted.
type Simulated struct {
	orchestration.Signal

	name      string
	delay     time.Duration
	failMsg   string
	fails     bool
	silent    bool
	duplicate bool
	clock     clockwork.Clock
}

// NewSimulated builds a subsystem from its roster entry.
func NewSimulated(spec config.SubsystemSpec, clock clockwork.Clock) *Simulated {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Simulated{
		name:      spec.Name,
		delay:     spec.Delay,
		failMsg:   spec.Fail,
		fails:     spec.Fail != "",
		silent:    spec.Silent,
		duplicate: spec.Duplicate,
		clock:     clock,
	}
}

// Name returns the subsystem name.
func (s *Simulated) Name() string { return s.name }

// StartInit begins the scripted initialization. A zero delay signals
// synchronously, before StartInit returns.
func (s *Simulated) StartInit(ctx context.Context) {
	if s.silent {
		return
	}
	if s.delay <= 0 {
		s.signal(ctx)
		return
	}
	go func() {
		select {
		case <-s.clock.After(s.delay):
			s.signal(ctx)
		case <-ctx.Done():
		}
	}()
}

func (s *Simulated) signal(ctx context.Context) {
	var err error
	if s.fails {
		err = errors.New(s.failMsg)
	}
	s.RaiseContext(ctx, s.name, err)
	if s.duplicate {
		s.RaiseContext(ctx, s.name, err)
	}
}
