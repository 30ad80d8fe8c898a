package classroom_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/classroom/fakeclassroom"
	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrumented_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	fake := fakeclassroom.NewFakeClassroom(classroom.UserInfo{Email: "ada@example.com"})
	courseID := fake.AddCourse(classroom.Course{Name: "Algorithms 101"}, true)
	m := metrics.New()

	factory := classroom.InstrumentFactory(fake.Factory(), m)
	svc, err := factory(ctx, nil)
	require.NoError(t, err)

	_, err = svc.ListCourses(ctx, classroom.CourseFilter{TeacherID: classroom.Me})
	require.NoError(t, err)

	_, err = svc.GetStudent(ctx, courseID, "bob@example.com")
	require.True(t, classroom.IsNotFound(err))

	fake.FailOn(classroom.OpCreateAnnouncement, classroom.KindPermissionDenied)
	_, err = svc.CreateAnnouncement(ctx, courseID, classroom.NewAnnouncement{Text: "hello"})
	require.Equal(t, classroom.KindPermissionDenied, classroom.KindOf(err))

	count, err := testutil.GatherAndCount(m.Registry(), "eduflow_remote_calls_total")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	require.Equal(t, 1, fake.Calls(classroom.OpListCourses))
	require.Equal(t, 1, fake.Calls(classroom.OpCreateAnnouncement))
}
