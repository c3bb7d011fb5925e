package orchestration

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/agbru/npcready/internal/errors"
)

func TestOutcomeRendering(t *testing.T) {
	t.Parallel()
	cause := errors.New("navmesh missing")
	tests := []struct {
		name     string
		outcome  Outcome
		wantKind string
		wantStr  string
		wantExit int
	}{
		{
			name:     "success",
			outcome:  Outcome{Kind: OutcomeSuccess, Completed: []string{"MoveSystem"}},
			wantKind: "success",
			wantStr:  "",
			wantExit: apperrors.ExitSuccess,
		},
		{
			name:     "failure",
			outcome:  Outcome{Kind: OutcomeFailure, Subsystem: "AIBrain", Cause: cause},
			wantKind: "failure",
			wantStr:  `subsystem "AIBrain" failed: navmesh missing`,
			wantExit: apperrors.ExitErrorSubsystem,
		},
		{
			name:     "timeout",
			outcome:  Outcome{Kind: OutcomeTimedOut, Completed: []string{"AttackSystem", "BodySystem"}, Deadline: 10 * time.Second},
			wantKind: "timed_out",
			wantStr:  `operation "readiness" timed out after 10s; completed: AttackSystem / BodySystem`,
			wantExit: apperrors.ExitErrorTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.outcome.Kind.String(); got != tt.wantKind {
				t.Errorf("Kind.String() = %q, want %q", got, tt.wantKind)
			}
			if got := tt.outcome.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
			if got := apperrors.ExitCode(tt.outcome.Err()); got != tt.wantExit {
				t.Errorf("ExitCode = %d, want %d", got, tt.wantExit)
			}
		})
	}
}

func TestOutcomeErrPreservesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("rig not found")
	err := Outcome{Kind: OutcomeFailure, Subsystem: "AnimationController", Cause: cause}.Err()

	if !errors.Is(err, cause) {
		t.Error("failure error should unwrap to the subsystem's cause")
	}

	timeout := Outcome{Kind: OutcomeTimedOut, Deadline: time.Second}.Err()
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Error("timeout error should match context.DeadlineExceeded")
	}
	if OutcomeKind(42).String() != "unknown" {
		t.Error("unknown kinds should render as unknown")
	}
}
