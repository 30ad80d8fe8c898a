package dashboard_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/dashboard"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		role  sessions.Role
		want  dashboard.Page
	}{
		{"no credential", false, sessions.RoleNone, dashboard.PageLogin},
		{"no credential with role", false, sessions.RoleInstructor, dashboard.PageLogin},
		{"role unset", true, sessions.RoleNone, dashboard.PageRoleSelect},
		{"instructor", true, sessions.RoleInstructor, dashboard.PageInstructor},
		{"student", true, sessions.RoleStudent, dashboard.PageStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dashboard.Route(tt.valid, tt.role))
		})
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		state classroom.SubmissionState
		due   time.Time
		want  dashboard.Status
	}{
		{"turned in before due", classroom.SubmissionTurnedIn, future, dashboard.StatusSubmitted},
		{"turned in after due", classroom.SubmissionTurnedIn, past, dashboard.StatusSubmitted},
		{"not submitted and overdue", classroom.SubmissionCreated, past, dashboard.StatusLate},
		{"no submission and overdue", "", past, dashboard.StatusLate},
		{"returned is not submitted", classroom.SubmissionReturned, past, dashboard.StatusLate},
		{"not yet due", classroom.SubmissionNew, future, dashboard.StatusPending},
		{"due exactly now", "", now, dashboard.StatusPending},
		{"no due date", "", time.Time{}, dashboard.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dashboard.Classify(tt.state, tt.due, now))
		})
	}
}

func TestChooseRole(t *testing.T) {
	c := dashboard.NewContext("s1", nil, sessions.State{CourseID: "stale"}, time.Now())

	next, outcome := dashboard.ChooseRole(c, "instructor")
	require.Equal(t, dashboard.OutcomeNone, outcome.Kind)
	require.Equal(t, sessions.RoleInstructor, next.Session.Role)
	require.Empty(t, next.Session.CourseID)
	require.Equal(t, sessions.RoleNone, c.Session.Role, "original context is untouched")

	next, outcome = dashboard.ChooseRole(c, "admin")
	require.Equal(t, dashboard.OutcomeError, outcome.Kind)
	require.False(t, next.Session.Role.IsSet())
}

func TestDecodeIntent(t *testing.T) {
	intent, err := dashboard.DecodeIntent(url.Values{
		"action":  {dashboard.ActionCreateCourse},
		"title":   {"  Algorithms 101 "},
		"section": {"Fall"},
	})
	require.NoError(t, err)
	require.Equal(t, dashboard.CreateCourse{Title: "Algorithms 101", Section: "Fall"}, intent)

	intent, err = dashboard.DecodeIntent(url.Values{"action": {dashboard.ActionOpenCourse}, "course_id": {"c1"}})
	require.NoError(t, err)
	require.Equal(t, dashboard.OpenCourse{CourseID: "c1"}, intent)

	_, err = dashboard.DecodeIntent(url.Values{"action": {"drop_table"}})
	require.ErrorIs(t, err, apperrors.ErrInvalidForm)
}

func TestValidator_Messages(t *testing.T) {
	v := dashboard.NewValidator()

	t.Run("required", func(t *testing.T) {
		outcome := dashboard.DescribeError(v, "creating course", v.Struct(dashboard.CreateCourse{}))
		require.Equal(t, "Error creating course: title is required", outcome.Message)
	})

	t.Run("material for the chosen kind", func(t *testing.T) {
		require.Error(t, v.Struct(dashboard.UploadMaterial{Kind: dashboard.MaterialKindDrive}))
		require.Error(t, v.Struct(dashboard.UploadMaterial{Kind: dashboard.MaterialKindLink, URL: "https://example.com"}))
		require.Error(t, v.Struct(dashboard.UploadMaterial{Kind: "video", DriveFileID: "f1"}))
		require.NoError(t, v.Struct(dashboard.UploadMaterial{Kind: dashboard.MaterialKindDrive, DriveFileID: "f1"}))
	})

	t.Run("assignment link needs both parts", func(t *testing.T) {
		base := dashboard.CreateAssignment{Title: "Homework", DueDate: "2026-03-20"}
		require.NoError(t, v.Struct(base))

		withURL := base
		withURL.URL = "https://example.com"
		require.Error(t, v.Struct(withURL))

		badDate := base
		badDate.DueDate = "20/03/2026"
		require.Error(t, v.Struct(badDate))
	})
}

func TestDescribeError_RemoteKinds(t *testing.T) {
	err := classroom.NewError(classroom.OpCreateCourse, classroom.KindPermissionDenied, nil)
	outcome := dashboard.DescribeError(dashboard.NewValidator(), "creating course", err)
	require.Equal(t, dashboard.OutcomeError, outcome.Kind)
	require.Contains(t, outcome.Message, "permission")
}
