package dashboard

import (
	"context"

	"github.com/jrsteele09/eduflow/classroom"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

// Assignment pairs course work with the caller's own submission.
type Assignment struct {
	classroom.CourseWork
	Submission *classroom.Submission
	Status     Status
}

// StudentPage is the view model of the student dashboard.
type StudentPage struct {
	Email string
	Flash sessions.Flash
	Mode  Mode

	Courses []classroom.Course

	Course        *classroom.Course
	Tabs          []Tab
	Tab           Tab
	Announcements []classroom.Announcement
	Assignments   []Assignment
	Materials     []classroom.CourseWorkMaterial

	Error string
}

// Student renders the read-only student dashboard.
type Student struct {
	validator *Validator
}

func NewStudent(v *Validator) *Student {
	return &Student{validator: v}
}

func (s *Student) Page(ctx context.Context, c Context, svc classroom.Service, tab Tab) StudentPage {
	page := StudentPage{
		Email: userEmail(ctx, c, svc),
		Flash: c.Session.Flags.Flash,
	}

	if c.Session.CourseID == "" {
		page.Mode = ModeCourseList
		courses, err := svc.ListCourses(ctx, classroom.CourseFilter{StudentID: classroom.Me})
		if err != nil {
			page.Error = DescribeError(s.validator, "loading courses", err).Message
			return page
		}
		page.Courses = courses
		return page
	}

	page.Mode = ModeCourse
	page.Tabs = StudentTabs
	page.Tab = ParseTab(string(tab), StudentTabs)

	course, err := svc.GetCourse(ctx, c.Session.CourseID)
	if err != nil {
		page.Error = DescribeError(s.validator, "loading course", err).Message
		return page
	}
	page.Course = course

	switch page.Tab {
	case TabAnnouncements:
		page.Announcements, err = svc.ListAnnouncements(ctx, course.ID)
	case TabAssignments:
		page.Assignments, err = s.assignments(ctx, c, svc, course.ID)
	case TabMaterials:
		page.Materials, err = svc.ListCourseWorkMaterials(ctx, course.ID)
	}
	if err != nil {
		page.Error = DescribeError(s.validator, "loading "+page.Tab.Label(), err).Message
	}
	return page
}

// assignments classifies every piece of course work against c.Now. A failed submission
// lookup is treated as no submission.
func (s *Student) assignments(ctx context.Context, c Context, svc classroom.Service, courseID string) ([]Assignment, error) {
	work, err := svc.ListCourseWork(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := make([]Assignment, 0, len(work))
	for _, w := range work {
		a := Assignment{CourseWork: w}
		subs, err := svc.ListMySubmissions(ctx, courseID, w.ID)
		if err != nil {
			log.Warn().Err(err).Str("course_work", w.ID).Msg("could not fetch submission")
		} else if len(subs) > 0 {
			a.Submission = &subs[0]
		}

		var state classroom.SubmissionState
		if a.Submission != nil {
			state = a.Submission.State
		}
		a.Status = Classify(state, w.Due, c.Now)
		out = append(out, a)
	}
	return out, nil
}

// Handle accepts navigation only.
func (s *Student) Handle(_ context.Context, c Context, intent Intent) (Context, Outcome) {
	var (
		next    Context
		outcome Outcome
	)
	switch it := intent.(type) {
	case OpenCourse:
		if err := s.validator.Struct(it); err != nil {
			next, outcome = c, DescribeError(s.validator, "opening course", err)
			break
		}
		next = c.WithSession(c.Session.WithCourse(it.CourseID))
	case BackToCourses:
		next = c.WithSession(c.Session.WithCourse(""))
	default:
		next, outcome = c, DescribeError(s.validator, "handling request",
			apperrors.Wrapf(apperrors.ErrUnsupported, "action %q", intent.Action()))
	}
	return next.WithOutcome(outcome), outcome
}
