package orchestration

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/agbru/npcready/internal/logging"
)

// fallbackLogger reports handler panics for signals with no logger set.
var fallbackLogger logging.Logger = logging.NewDefaultLogger()

type subscription struct {
	id uint64
	fn ReadyFunc
}

// Signal is a readiness broadcaster that subsystems embed to satisfy the
// Subscribe half of the Subsystem contract. The zero value is ready to use.
//
// Handlers are invoked outside the internal lock, so a handler may cancel its
// own (or any other) subscription while being called.
type Signal struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
	logger logging.Logger
}

// SetLogger sets the logger used to report panicking handlers.
func (s *Signal) SetLogger(l logging.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = l
}

// Subscribe registers fn and returns an idempotent cancel function.
func (s *Signal) Subscribe(fn ReadyFunc) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Signal) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Raise delivers (name, err) to every current subscriber in registration
// order and returns how many were called. A panicking handler is logged and
// does not prevent delivery to the others.
//
// Parameters:
//   - name: The name reported to handlers; empty lets the coordinator use the
//     handle's name.
//   - err: nil for ready, the initialization error otherwise.
//
// Returns:
//   - int: The number of handlers called.
func (s *Signal) Raise(name string, err error) int {
	s.mu.Lock()
	subs, logger := s.snapshotLocked()
	s.mu.Unlock()
	return deliver(subs, logger, name, err)
}

// RaiseContext is Raise for work started by StartInit(ctx): nothing is
// delivered once ctx is done. The check and the subscriber snapshot happen
// under one lock, so a signal from a finalized attempt never reaches a
// handler subscribed after that attempt's context was cancelled.
func (s *Signal) RaiseContext(ctx context.Context, name string, err error) int {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return 0
	}
	subs, logger := s.snapshotLocked()
	s.mu.Unlock()
	return deliver(subs, logger, name, err)
}

func (s *Signal) snapshotLocked() ([]subscription, logging.Logger) {
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	logger := s.logger
	if logger == nil {
		logger = fallbackLogger
	}
	return subs, logger
}

func deliver(subs []subscription, logger logging.Logger, name string, err error) int {
	for _, sub := range subs {
		safeCall(logger, sub.fn, name, err)
	}
	return len(subs)
}

// Subscribers returns the number of active subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func safeCall(logger logging.Logger, fn ReadyFunc, name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("readiness handler panicked", fmt.Errorf("panic: %v", r),
				logging.String("subsystem", name),
				logging.String("stack", string(debug.Stack())))
		}
	}()
	fn(name, err)
}
