package orchestration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// fakeSubsystem is a hand-driven Subsystem: tests decide when it signals.
type fakeSubsystem struct {
	Signal
	name    string
	started atomic.Int32
	// onStart, when set, runs synchronously inside StartInit.
	onStart func(f *fakeSubsystem)

	mu  sync.Mutex
	ctx context.Context
}

func newFake(name string) *fakeSubsystem { return &fakeSubsystem{name: name} }

func (f *fakeSubsystem) Name() string { return f.name }

func (f *fakeSubsystem) StartInit(ctx context.Context) {
	f.mu.Lock()
	f.ctx = ctx
	f.mu.Unlock()
	f.started.Add(1)
	if f.onStart != nil {
		f.onStart(f)
	}
}

// startContext returns the context of the latest StartInit call.
func (f *fakeSubsystem) startContext() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

func (f *fakeSubsystem) ready() int { return f.Raise(f.name, nil) }

func (f *fakeSubsystem) fail(msg string) int { return f.Raise(f.name, errors.New(msg)) }

// sixSubsystems mirrors the canonical NPC roster.
func sixSubsystems() []*fakeSubsystem {
	names := []string{"AnimationController", "AttackSystem", "CharacterData", "AIBrain", "MoveSystem", "BodySystem"}
	fakes := make([]*fakeSubsystem, len(names))
	for i, n := range names {
		fakes[i] = newFake(n)
	}
	return fakes
}

func handlesFor(fakes []*fakeSubsystem) []Handle {
	subs := make([]Subsystem, len(fakes))
	for i, f := range fakes {
		subs[i] = f
	}
	return HandlesOf(subs...)
}

// outcomeRecorder captures every onDone call together with the clock time.
type outcomeRecorder struct {
	clock clockwork.Clock
	ch    chan Outcome

	mu    sync.Mutex
	calls []Outcome
	at    []time.Time
}

func newRecorder(clock clockwork.Clock) *outcomeRecorder {
	return &outcomeRecorder{clock: clock, ch: make(chan Outcome, 64)}
}

func (r *outcomeRecorder) onDone(o Outcome) {
	r.mu.Lock()
	r.calls = append(r.calls, o)
	r.at = append(r.at, r.clock.Now())
	r.mu.Unlock()
	r.ch <- o
}

func (r *outcomeRecorder) wait(t *testing.T) Outcome {
	t.Helper()
	select {
	case o := <-r.ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func (r *outcomeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *outcomeRecorder) deliveredAt(i int) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.at[i]
}

// recordingObserver counts dispositions per subsystem.
type recordingObserver struct {
	mu       sync.Mutex
	started  int
	finished []Outcome
	signals  map[Disposition][]string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{signals: make(map[Disposition][]string)}
}

func (o *recordingObserver) AttemptStarted(string, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) SignalObserved(_ string, subsystem string, d Disposition) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.signals[d] = append(o.signals[d], subsystem)
}

func (o *recordingObserver) AttemptFinished(_ string, outcome Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, outcome)
}

func (o *recordingObserver) dispositions(d Disposition) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.signals[d]...)
}
