package sessions_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    sessions.Role
		wantErr bool
	}{
		{in: "instructor", want: sessions.RoleInstructor},
		{in: " Student ", want: sessions.RoleStudent},
		{in: "", wantErr: true},
		{in: "admin", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sessions.ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrInvalidRole)
				require.False(t, got.IsSet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestState_CopiesAreIndependent(t *testing.T) {
	base := sessions.State{}.WithSuggestion(sessions.RoleInstructor)

	withCourse := base.WithCreateCourse(true).WithCourse("c-1")
	require.Equal(t, "c-1", withCourse.CourseID)
	require.False(t, withCourse.Flags.ShowCreateCourse)
	require.Empty(t, base.CourseID)

	creating := withCourse.WithCreateCourse(true)
	require.True(t, creating.Flags.ShowCreateCourse)
	require.Empty(t, creating.CourseID)
	require.Equal(t, "c-1", withCourse.CourseID)

	// the suggestion never sets the role
	require.Equal(t, sessions.RoleNone, creating.Role)
}

func TestState_TakeFlash(t *testing.T) {
	s := sessions.State{}.WithFlash(sessions.FlashWarning, "Student already enrolled")

	flash, rest := s.TakeFlash()
	require.Equal(t, sessions.FlashWarning, flash.Kind)
	require.Equal(t, "Student already enrolled", flash.Message)
	require.True(t, rest.Flags.Flash.Empty())
	require.False(t, s.Flags.Flash.Empty())
}

func TestInMemoryRepo(t *testing.T) {
	r := sessions.NewInMemoryRepo()

	_, err := r.Get("missing")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	require.Error(t, r.Upsert("", sessions.State{}))

	require.NoError(t, r.Upsert("s1", sessions.State{Role: sessions.RoleStudent}))
	first, err := r.Get("s1")
	require.NoError(t, err)
	require.False(t, first.CreatedAt.IsZero())

	require.NoError(t, r.Upsert("s1", sessions.State{Role: sessions.RoleInstructor}))
	second, err := r.Get("s1")
	require.NoError(t, err)
	require.Equal(t, sessions.RoleInstructor, second.Role)
	require.Equal(t, first.CreatedAt, second.CreatedAt)

	removed, err := r.DeleteExpired(time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	require.NoError(t, r.Delete("s1"))
	_, err = r.Get("s1")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
