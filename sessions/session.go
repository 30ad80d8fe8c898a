package sessions

import (
	"strings"
	"time"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
)

// Role gates which dashboard a session may reach.
type Role string

const (
	RoleNone       Role = ""
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole accepts only the two selectable roles.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return RoleNone, apperrors.Wrapf(apperrors.ErrInvalidRole, "role %q", s)
	}
}

func (r Role) IsSet() bool {
	return r == RoleInstructor || r == RoleStudent
}

// FlashKind classifies a one-shot message shown on the next render.
type FlashKind string

const (
	FlashNone    FlashKind = ""
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

func (f Flash) Empty() bool {
	return f.Kind == FlashNone || f.Message == ""
}

// Flags are transient UI toggles.
type Flags struct {
	ShowCreateCourse bool
	RoleSuggestion   Role // advisory only, never copied into Role
	Flash            Flash
}

// State is the per-browser session. It is replaced wholesale, never mutated in place by callers.
type State struct {
	Role      Role
	CourseID  string
	Flags     Flags
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithRole returns a copy with the role set.
func (s State) WithRole(role Role) State {
	s.Role = role
	return s
}

// WithCourse returns a copy focused on a course, closing the create form.
func (s State) WithCourse(courseID string) State {
	s.CourseID = courseID
	s.Flags.ShowCreateCourse = false
	return s
}

// WithCreateCourse returns a copy showing the create-course form.
func (s State) WithCreateCourse(show bool) State {
	s.Flags.ShowCreateCourse = show
	if show {
		s.CourseID = ""
	}
	return s
}

// WithFlash returns a copy carrying a message for the next render.
func (s State) WithFlash(kind FlashKind, msg string) State {
	s.Flags.Flash = Flash{Kind: kind, Message: msg}
	return s
}

// WithSuggestion returns a copy with the advisory role suggestion cached.
func (s State) WithSuggestion(role Role) State {
	s.Flags.RoleSuggestion = role
	return s
}

// TakeFlash returns the pending flash and a copy without it.
func (s State) TakeFlash() (Flash, State) {
	f := s.Flags.Flash
	s.Flags.Flash = Flash{}
	return f, s
}
