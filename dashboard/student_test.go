package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/classroom/fakeclassroom"
	"github.com/jrsteele09/eduflow/dashboard"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/stretchr/testify/require"
)

func TestStudent_Assignments(t *testing.T) {
	ctx := context.Background()
	fake := fakeclassroom.NewFakeClassroom(classroom.UserInfo{Email: "bob@example.com"})
	courseID := fake.AddCourse(classroom.Course{Name: "Poetry"}, false)
	fake.AddCourse(classroom.Course{Name: "Taught elsewhere"}, true)

	submitted := fake.AddCourseWork(courseID, classroom.CourseWork{Title: "Sonnet", Due: testNow.Add(-48 * time.Hour)})
	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "Haiku", Due: testNow.Add(-24 * time.Hour)})
	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "Limerick", Due: testNow.Add(24 * time.Hour)})
	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "Free verse"})
	fake.SetSubmission(courseID, classroom.Submission{CourseWorkID: submitted, State: classroom.SubmissionTurnedIn, AssignedGrade: 18})

	view := dashboard.NewStudent(dashboard.NewValidator())
	c := dashboard.NewContext("s1", nil, sessions.State{Role: sessions.RoleStudent}, testNow)

	list := view.Page(ctx, c, fake, "")
	require.Equal(t, dashboard.ModeCourseList, list.Mode)
	require.Len(t, list.Courses, 1)
	require.Equal(t, courseID, list.Courses[0].ID)

	c, _ = view.Handle(ctx, c, dashboard.OpenCourse{CourseID: courseID})
	page := view.Page(ctx, c, fake, dashboard.TabAssignments)
	require.Equal(t, dashboard.ModeCourse, page.Mode)

	statuses := map[string]dashboard.Status{}
	for _, a := range page.Assignments {
		statuses[a.Title] = a.Status
	}
	require.Equal(t, map[string]dashboard.Status{
		"Sonnet":     dashboard.StatusSubmitted,
		"Haiku":      dashboard.StatusLate,
		"Limerick":   dashboard.StatusPending,
		"Free verse": dashboard.StatusPending,
	}, statuses)
	require.Equal(t, float64(18), page.Assignments[0].Submission.AssignedGrade)

	t.Run("submission lookup failure counts as not submitted", func(t *testing.T) {
		fake.FailOn(classroom.OpListMySubmissions, classroom.KindUnavailable)
		defer fake.ClearFailures()

		page := view.Page(ctx, c, fake, dashboard.TabAssignments)
		require.Empty(t, page.Error)
		require.Equal(t, dashboard.StatusLate, page.Assignments[0].Status)
		require.Nil(t, page.Assignments[0].Submission)
	})
}

func TestStudent_HandleIsNavigationOnly(t *testing.T) {
	view := dashboard.NewStudent(dashboard.NewValidator())
	c := dashboard.NewContext("s1", nil, sessions.State{Role: sessions.RoleStudent, CourseID: "c1"}, testNow)

	next, outcome := view.Handle(context.Background(), c, dashboard.CreateCourse{Title: "Nope"})
	require.Equal(t, dashboard.OutcomeError, outcome.Kind)
	require.Equal(t, "c1", next.Session.CourseID)

	next, outcome = view.Handle(context.Background(), c, dashboard.BackToCourses{})
	require.Equal(t, dashboard.OutcomeNone, outcome.Kind)
	require.Empty(t, next.Session.CourseID)
}
