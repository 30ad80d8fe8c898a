package fakeclassroom_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/classroom/fakeclassroom"
	"github.com/stretchr/testify/require"
)

func TestFakeClassroom_Roles(t *testing.T) {
	ctx := context.Background()
	fake := fakeclassroom.NewFakeClassroom(classroom.UserInfo{Email: "ada@example.com", Name: "Ada"})
	taught := fake.AddCourse(classroom.Course{Name: "Compilers"}, true)
	attended := fake.AddCourse(classroom.Course{Name: "Poetry"}, false)

	teaching, err := fake.ListCourses(ctx, classroom.CourseFilter{TeacherID: classroom.Me})
	require.NoError(t, err)
	require.Len(t, teaching, 1)
	require.Equal(t, taught, teaching[0].ID)

	learning, err := fake.ListCourses(ctx, classroom.CourseFilter{StudentID: classroom.Me})
	require.NoError(t, err)
	require.Len(t, learning, 1)
	require.Equal(t, attended, learning[0].ID)
}

func TestFakeClassroom_Enrollment(t *testing.T) {
	ctx := context.Background()
	fake := fakeclassroom.NewFakeClassroom(classroom.UserInfo{Email: "ada@example.com"})
	courseID := fake.AddCourse(classroom.Course{Name: "Compilers"}, true)

	_, err := fake.GetStudent(ctx, courseID, "bob@example.com")
	require.True(t, classroom.IsNotFound(err))

	_, err = fake.CreateStudent(ctx, courseID, "bob@example.com")
	require.NoError(t, err)

	st, err := fake.GetStudent(ctx, courseID, "BOB@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", st.Email)

	_, err = fake.CreateStudent(ctx, courseID, "bob@example.com")
	require.Equal(t, classroom.KindAlreadyExists, classroom.KindOf(err))
}

func TestFakeClassroom_Ordering(t *testing.T) {
	ctx := context.Background()
	fake := fakeclassroom.NewFakeClassroom(classroom.UserInfo{Email: "ada@example.com"})
	courseID := fake.AddCourse(classroom.Course{Name: "Compilers"}, true)

	for _, text := range []string{"first", "second"} {
		_, err := fake.CreateAnnouncement(ctx, courseID, classroom.NewAnnouncement{Text: text})
		require.NoError(t, err)
	}
	list, err := fake.ListAnnouncements(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, "second", list[0].Text)

	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "undated"})
	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "later", Due: time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)})
	fake.AddCourseWork(courseID, classroom.CourseWork{Title: "sooner", Due: time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC)})
	work, err := fake.ListCourseWork(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, []string{"sooner", "later", "undated"}, []string{work[0].Title, work[1].Title, work[2].Title})
}
