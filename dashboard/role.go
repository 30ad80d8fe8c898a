package dashboard

import (
	"context"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

// SuggestRole guesses a role from whether the user teaches any course.
// The result only highlights a choice; it never sets the session role.
func SuggestRole(ctx context.Context, svc classroom.Service) sessions.Role {
	courses, err := svc.ListCourses(ctx, classroom.CourseFilter{TeacherID: classroom.Me})
	if err != nil {
		log.Warn().Err(err).Msg("could not list taught courses for role suggestion")
		return sessions.RoleStudent
	}
	if len(courses) > 0 {
		return sessions.RoleInstructor
	}
	return sessions.RoleStudent
}

// ChooseRole applies the user's explicit role choice.
func ChooseRole(c Context, raw string) (Context, Outcome) {
	role, err := sessions.ParseRole(raw)
	if err != nil {
		return c, Outcome{Kind: OutcomeError, Message: "Please choose Instructor or Student."}
	}
	return c.WithSession(c.Session.WithRole(role).WithCourse("")), Outcome{}
}
