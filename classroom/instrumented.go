package classroom

import (
	"context"
	"time"

	"github.com/jrsteele09/eduflow/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

var _ Service = (*Instrumented)(nil)

// Instrumented counts and logs every call made through the wrapped Service.
type Instrumented struct {
	next    Service
	metrics *metrics.Metrics
}

func NewInstrumented(next Service, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

// InstrumentFactory wraps every Service the factory builds.
func InstrumentFactory(f Factory, m *metrics.Metrics) Factory {
	return func(ctx context.Context, ts oauth2.TokenSource) (Service, error) {
		svc, err := f(ctx, ts)
		if err != nil {
			return nil, err
		}
		return NewInstrumented(svc, m), nil
	}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		log.Warn().Err(err).Str("op", op).Dur("elapsed", time.Since(start)).Msg("remote call failed")
	} else {
		log.Debug().Str("op", op).Dur("elapsed", time.Since(start)).Msg("remote call")
	}
	s.metrics.RemoteCall(op, outcome)
}

func (s *Instrumented) ListCourses(ctx context.Context, filter CourseFilter) (courses []Course, err error) {
	defer func(start time.Time) { s.observe(OpListCourses, start, err) }(time.Now())
	return s.next.ListCourses(ctx, filter)
}

func (s *Instrumented) GetCourse(ctx context.Context, courseID string) (course *Course, err error) {
	defer func(start time.Time) { s.observe(OpGetCourse, start, err) }(time.Now())
	return s.next.GetCourse(ctx, courseID)
}

func (s *Instrumented) CreateCourse(ctx context.Context, c NewCourse) (course *Course, err error) {
	defer func(start time.Time) { s.observe(OpCreateCourse, start, err) }(time.Now())
	return s.next.CreateCourse(ctx, c)
}

func (s *Instrumented) ListAnnouncements(ctx context.Context, courseID string) (list []Announcement, err error) {
	defer func(start time.Time) { s.observe(OpListAnnouncements, start, err) }(time.Now())
	return s.next.ListAnnouncements(ctx, courseID)
}

func (s *Instrumented) CreateAnnouncement(ctx context.Context, courseID string, a NewAnnouncement) (created *Announcement, err error) {
	defer func(start time.Time) { s.observe(OpCreateAnnouncement, start, err) }(time.Now())
	return s.next.CreateAnnouncement(ctx, courseID, a)
}

func (s *Instrumented) ListStudents(ctx context.Context, courseID string) (list []Student, err error) {
	defer func(start time.Time) { s.observe(OpListStudents, start, err) }(time.Now())
	return s.next.ListStudents(ctx, courseID)
}

func (s *Instrumented) GetStudent(ctx context.Context, courseID, userID string) (student *Student, err error) {
	defer func(start time.Time) {
		// not enrolled is an expected answer, not a failure
		if IsNotFound(err) {
			s.metrics.RemoteCall(OpGetStudent, KindNotFound.String())
			return
		}
		s.observe(OpGetStudent, start, err)
	}(time.Now())
	return s.next.GetStudent(ctx, courseID, userID)
}

func (s *Instrumented) CreateStudent(ctx context.Context, courseID, userID string) (student *Student, err error) {
	defer func(start time.Time) { s.observe(OpCreateStudent, start, err) }(time.Now())
	return s.next.CreateStudent(ctx, courseID, userID)
}

func (s *Instrumented) ListCourseWork(ctx context.Context, courseID string) (list []CourseWork, err error) {
	defer func(start time.Time) { s.observe(OpListCourseWork, start, err) }(time.Now())
	return s.next.ListCourseWork(ctx, courseID)
}

func (s *Instrumented) CreateCourseWork(ctx context.Context, courseID string, w NewCourseWork) (created *CourseWork, err error) {
	defer func(start time.Time) { s.observe(OpCreateCourseWork, start, err) }(time.Now())
	return s.next.CreateCourseWork(ctx, courseID, w)
}

func (s *Instrumented) ListCourseWorkMaterials(ctx context.Context, courseID string) (list []CourseWorkMaterial, err error) {
	defer func(start time.Time) { s.observe(OpListCourseWorkMaterials, start, err) }(time.Now())
	return s.next.ListCourseWorkMaterials(ctx, courseID)
}

func (s *Instrumented) CreateCourseWorkMaterial(ctx context.Context, courseID string, m NewCourseWorkMaterial) (created *CourseWorkMaterial, err error) {
	defer func(start time.Time) { s.observe(OpCreateCourseWorkMaterial, start, err) }(time.Now())
	return s.next.CreateCourseWorkMaterial(ctx, courseID, m)
}

func (s *Instrumented) ListMySubmissions(ctx context.Context, courseID, courseWorkID string) (list []Submission, err error) {
	defer func(start time.Time) { s.observe(OpListMySubmissions, start, err) }(time.Now())
	return s.next.ListMySubmissions(ctx, courseID, courseWorkID)
}

func (s *Instrumented) UserInfo(ctx context.Context) (info *UserInfo, err error) {
	defer func(start time.Time) { s.observe(OpUserInfo, start, err) }(time.Now())
	return s.next.UserInfo(ctx)
}
