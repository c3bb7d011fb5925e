package orchestration

import (
	"slices"
	"time"

	apperrors "github.com/agbru/npcready/internal/errors"
)

// ReadinessOperation is the operation name carried by timeout errors.
const ReadinessOperation = "readiness"

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess means every subsystem reported ready.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure means one subsystem reported an error.
	OutcomeFailure
	// OutcomeTimedOut means the deadline elapsed first.
	OutcomeTimedOut
)

// String returns the lower-case label used in logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of a coordination attempt.
type Outcome struct {
	Kind OutcomeKind
	// Subsystem and Cause identify the failing subsystem for OutcomeFailure.
	Subsystem string
	Cause     error
	// Completed lists the subsystems that reported ready, in arrival order.
	// For OutcomeTimedOut these are exactly the ones that beat the deadline.
	Completed []string
	// Deadline is the limit the attempt ran under.
	Deadline time.Duration
	// Elapsed is the time from Start to finalization.
	Elapsed time.Duration
}

// Success reports whether the outcome is OutcomeSuccess.
func (o Outcome) Success() bool { return o.Kind == OutcomeSuccess }

// Err converts the outcome into an error value: nil on success,
// apperrors.SubsystemError on failure, apperrors.TimeoutError on timeout.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeFailure:
		return apperrors.SubsystemError{Subsystem: o.Subsystem, Cause: o.Cause}
	case OutcomeTimedOut:
		return apperrors.TimeoutError{
			Operation: ReadinessOperation,
			Limit:     o.Deadline,
			Completed: slices.Clone(o.Completed),
		}
	default:
		return nil
	}
}

// String renders the outcome for logs and UI: empty for success, otherwise
// the failing subsystem and its message, or the names completed before the
// deadline.
func (o Outcome) String() string {
	if err := o.Err(); err != nil {
		return err.Error()
	}
	return ""
}
