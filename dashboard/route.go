package dashboard

import "github.com/jrsteele09/eduflow/sessions"

type Page int

const (
	PageLogin Page = iota
	PageRoleSelect
	PageInstructor
	PageStudent
)

func (p Page) String() string {
	switch p {
	case PageRoleSelect:
		return "role_select"
	case PageInstructor:
		return "instructor"
	case PageStudent:
		return "student"
	default:
		return "login"
	}
}

// Route picks the only page a request may land on. A role-specific page is
// reachable only with a valid credential and a chosen role.
func Route(credentialValid bool, role sessions.Role) Page {
	switch {
	case !credentialValid:
		return PageLogin
	case role == sessions.RoleInstructor:
		return PageInstructor
	case role == sessions.RoleStudent:
		return PageStudent
	default:
		return PageRoleSelect
	}
}
