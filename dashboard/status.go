package dashboard

import (
	"time"

	"github.com/jrsteele09/eduflow/classroom"
)

type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusLate      Status = "Late"
	StatusPending   Status = "Pending"
)

// Classify derives an assignment's status for the caller. Submitted wins over Late,
// and work without a due date (zero due) is never late.
func Classify(state classroom.SubmissionState, due, now time.Time) Status {
	switch {
	case state == classroom.SubmissionTurnedIn:
		return StatusSubmitted
	case !due.IsZero() && now.After(due):
		return StatusLate
	default:
		return StatusPending
	}
}
