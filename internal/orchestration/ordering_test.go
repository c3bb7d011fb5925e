package orchestration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/npcready/internal/orchestration"
	"github.com/agbru/npcready/internal/orchestration/mocks"
)

// TestStartSubscribesBeforeStarting verifies with strict call ordering that
// every subscription exists before the first StartInit, and that both
// subscriptions are cancelled when the attempt finalizes.
func TestStartSubscribesBeforeStarting(t *testing.T) {
	ctrl := gomock.NewController(t)
	move := mocks.NewMockSubsystem(ctrl)
	brain := mocks.NewMockSubsystem(ctrl)
	obs := mocks.NewMockObserver(ctrl)

	handlers := map[*mocks.MockSubsystem]orchestration.ReadyFunc{}
	cancelled := map[*mocks.MockSubsystem]int{}
	subscribe := func(m *mocks.MockSubsystem) func(orchestration.ReadyFunc) func() {
		return func(fn orchestration.ReadyFunc) func() {
			handlers[m] = fn
			return func() { cancelled[m]++ }
		}
	}

	gomock.InOrder(
		move.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribe(move)),
		brain.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribe(brain)),
		move.EXPECT().StartInit(gomock.Any()).Do(func(context.Context) {
			handlers[move]("MoveSystem", nil)
		}),
		brain.EXPECT().StartInit(gomock.Any()).Do(func(context.Context) {
			handlers[brain]("AIBrain", nil)
		}),
	)
	gomock.InOrder(
		obs.EXPECT().AttemptStarted("mocked", 2),
		obs.EXPECT().SignalObserved("mocked", "MoveSystem", orchestration.DispositionReady),
		obs.EXPECT().SignalObserved("mocked", "AIBrain", orchestration.DispositionReady),
		obs.EXPECT().AttemptFinished("mocked", gomock.Any()),
	)

	var got []orchestration.Outcome
	c := orchestration.NewCoordinator("mocked", orchestration.WithObserver(obs))
	handles := []orchestration.Handle{
		{Name: "MoveSystem", Subsystem: move},
		{Name: "AIBrain", Subsystem: brain},
	}
	if err := c.Start(context.Background(), handles, time.Minute, func(o orchestration.Outcome) { got = append(got, o) }); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(got) != 1 || got[0].Kind != orchestration.OutcomeSuccess {
		t.Fatalf("outcomes = %+v, want one success", got)
	}
	if cancelled[move] != 1 || cancelled[brain] != 1 {
		t.Errorf("cancel counts = %d/%d, want 1/1", cancelled[move], cancelled[brain])
	}
}

// TestSubscriptionsCancelledBeforeNotify checks the finalize ordering: by the
// time the listener runs, every subscription has already been cancelled.
func TestSubscriptionsCancelledBeforeNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	body := mocks.NewMockSubsystem(ctrl)
	anim := mocks.NewMockSubsystem(ctrl)

	var bodyReady orchestration.ReadyFunc
	cancels := 0
	body.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn orchestration.ReadyFunc) func() {
		bodyReady = fn
		return func() { cancels++ }
	})
	anim.EXPECT().Subscribe(gomock.Any()).Return(func() { cancels++ })
	body.EXPECT().StartInit(gomock.Any())
	anim.EXPECT().StartInit(gomock.Any())

	cancelsAtNotify := -1
	c := orchestration.NewCoordinator("ordering")
	handles := []orchestration.Handle{
		{Name: "BodySystem", Subsystem: body},
		{Name: "AnimationController", Subsystem: anim},
	}
	err := c.Start(context.Background(), handles, time.Minute, func(o orchestration.Outcome) {
		cancelsAtNotify = cancels
		if !errors.Is(o.Err(), o.Cause) {
			t.Errorf("failure error should wrap its cause")
		}
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	bodyReady("BodySystem", errors.New("ragdoll missing"))
	if cancelsAtNotify != 2 {
		t.Errorf("subscriptions cancelled at notify = %d, want 2", cancelsAtNotify)
	}
}
