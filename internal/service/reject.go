package service

import "fmt"

// Reason classifies why a submission was refused. Authorization refusals are
// always ReasonUnauthorized, never a generic failure, so callers can tell
// "you can't do this" from "this doesn't exist".
type Reason string

const (
	ReasonNotFound         Reason = "NOT_FOUND"
	ReasonInactiveTarget   Reason = "INACTIVE_TARGET"
	ReasonFutureDate       Reason = "FUTURE_DATE"
	ReasonDuplicateRecord  Reason = "DUPLICATE_RECORD"
	ReasonUnauthorized     Reason = "UNAUTHORIZED"
	ReasonInvalidTimeRange Reason = "INVALID_TIME_RANGE"
	ReasonHasDependents    Reason = "HAS_DEPENDENTS"
)

// Reject is the typed refusal returned by the submission guards and the
// hierarchy management operations. Anything that is not a *Reject is an
// unexpected persistence failure and surfaces as an opaque error.
type Reject struct {
	Reason Reason
	Msg    string
}

func (e *Reject) Error() string { return fmt.Sprintf("%s: %s", e.Reason, e.Msg) }

func reject(reason Reason, format string, args ...interface{}) *Reject {
	return &Reject{Reason: reason, Msg: fmt.Sprintf(format, args...)}
}
