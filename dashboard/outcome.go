package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/sessions"
)

type OutcomeKind string

const (
	OutcomeNone    OutcomeKind = ""
	OutcomeSuccess OutcomeKind = "success"
	OutcomeWarning OutcomeKind = "warning"
	OutcomeError   OutcomeKind = "error"
)

// Outcome is the user-facing result of an intent.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

func success(format string, args ...interface{}) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: fmt.Sprintf(format, args...)}
}

func warning(msg string) Outcome {
	return Outcome{Kind: OutcomeWarning, Message: msg}
}

func (o Outcome) flashKind() sessions.FlashKind {
	switch o.Kind {
	case OutcomeSuccess:
		return sessions.FlashSuccess
	case OutcomeWarning:
		return sessions.FlashWarning
	case OutcomeError:
		return sessions.FlashError
	default:
		return sessions.FlashNone
	}
}

// DescribeError turns a failed action into the message shown to the user.
// action reads as a gerund phrase, e.g. "creating course".
func DescribeError(v *Validator, action string, err error) Outcome {
	return Outcome{Kind: OutcomeError, Message: fmt.Sprintf("Error %s: %s", action, reason(v, err))}
}

func reason(v *Validator, err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && v != nil {
		return strings.Join(v.Messages(verrs), "; ")
	}

	var cerr *classroom.Error
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case classroom.KindNotFound:
			return "the requested item was not found"
		case classroom.KindAlreadyExists:
			return "it already exists"
		case classroom.KindPermissionDenied:
			return "you do not have permission for this in Classroom"
		case classroom.KindUnauthenticated:
			return "your session has expired, please sign in again"
		case classroom.KindUnavailable:
			return "Classroom is unavailable, try again later"
		default:
			if cerr.Err != nil {
				return cerr.Err.Error()
			}
			return cerr.Error()
		}
	}
	return err.Error()
}
