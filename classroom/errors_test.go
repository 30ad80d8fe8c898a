package classroom_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	base := classroom.NewError(classroom.OpGetStudent, classroom.KindNotFound, errors.New("404"))
	wrapped := fmt.Errorf("enroll: %w", base)

	require.Equal(t, classroom.KindNotFound, classroom.KindOf(wrapped))
	require.True(t, classroom.IsNotFound(wrapped))
	require.Equal(t, classroom.KindUnknown, classroom.KindOf(errors.New("plain")))
	require.False(t, classroom.IsNotFound(nil))
	require.Equal(t, "students.get: 404", base.Error())
}

func TestKindFromStatus(t *testing.T) {
	tests := map[int]classroom.ErrorKind{
		400: classroom.KindInvalidArgument,
		401: classroom.KindUnauthenticated,
		403: classroom.KindPermissionDenied,
		404: classroom.KindNotFound,
		409: classroom.KindAlreadyExists,
		503: classroom.KindUnavailable,
		418: classroom.KindUnknown,
	}
	for code, want := range tests {
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			require.Equal(t, want, classroom.KindFromStatus(code))
		})
	}
}

func TestMaterialHref(t *testing.T) {
	require.Equal(t, "https://drive.google.com/file/d/f1/view", classroom.DriveFile{ID: "f1"}.Href())
	require.Equal(t, "https://youtu.be/v1", classroom.YouTubeVideo{ID: "v1"}.Href())
	require.Equal(t, "https://example.com", classroom.Link{URL: "https://example.com"}.Href())
}
