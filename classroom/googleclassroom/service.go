package googleclassroom

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/eduflow/classroom"
	"golang.org/x/oauth2"
	api "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var _ classroom.Service = (*Service)(nil)

// Service talks to Google Classroom and the userinfo endpoint.
type Service struct {
	classroom *api.Service
	userinfo  *oauth2api.Service
}

func New(ctx context.Context, opts ...option.ClientOption) (*Service, error) {
	cs, err := api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create classroom service: %w", err)
	}
	us, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create userinfo service: %w", err)
	}
	return &Service{classroom: cs, userinfo: us}, nil
}

// NewFactory returns a classroom.Factory. opts are applied before the token source.
func NewFactory(opts ...option.ClientOption) classroom.Factory {
	return func(ctx context.Context, ts oauth2.TokenSource) (classroom.Service, error) {
		all := append(append([]option.ClientOption(nil), opts...), option.WithTokenSource(ts))
		return New(ctx, all...)
	}
}

func (s *Service) ListCourses(ctx context.Context, filter classroom.CourseFilter) ([]classroom.Course, error) {
	call := s.classroom.Courses.List()
	if filter.TeacherID != "" {
		call = call.TeacherId(filter.TeacherID)
	}
	if filter.StudentID != "" {
		call = call.StudentId(filter.StudentID)
	}

	var courses []classroom.Course
	err := call.Pages(ctx, func(resp *api.ListCoursesResponse) error {
		for _, c := range resp.Courses {
			courses = append(courses, fromCourse(c))
		}
		return nil
	})
	if err != nil {
		return nil, wrap(classroom.OpListCourses, err)
	}
	return courses, nil
}

func (s *Service) GetCourse(ctx context.Context, courseID string) (*classroom.Course, error) {
	c, err := s.classroom.Courses.Get(courseID).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpGetCourse, err)
	}
	course := fromCourse(c)
	return &course, nil
}

func (s *Service) CreateCourse(ctx context.Context, nc classroom.NewCourse) (*classroom.Course, error) {
	c, err := s.classroom.Courses.Create(&api.Course{
		Name:               nc.Name,
		Section:            nc.Section,
		DescriptionHeading: nc.DescriptionHeading,
		Description:        nc.Description,
		Room:               nc.Room,
		OwnerId:            nc.OwnerID,
		CourseState:        nc.State,
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpCreateCourse, err)
	}
	course := fromCourse(c)
	return &course, nil
}

func (s *Service) ListAnnouncements(ctx context.Context, courseID string) ([]classroom.Announcement, error) {
	var list []classroom.Announcement
	err := s.classroom.Courses.Announcements.List(courseID).
		OrderBy("updateTime desc").
		Pages(ctx, func(resp *api.ListAnnouncementsResponse) error {
			for _, a := range resp.Announcements {
				list = append(list, fromAnnouncement(a))
			}
			return nil
		})
	if err != nil {
		return nil, wrap(classroom.OpListAnnouncements, err)
	}
	return list, nil
}

func (s *Service) CreateAnnouncement(ctx context.Context, courseID string, na classroom.NewAnnouncement) (*classroom.Announcement, error) {
	a, err := s.classroom.Courses.Announcements.Create(courseID, &api.Announcement{
		Text:      na.Text,
		State:     na.State,
		Materials: toMaterials(na.Materials),
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpCreateAnnouncement, err)
	}
	created := fromAnnouncement(a)
	return &created, nil
}

func (s *Service) ListStudents(ctx context.Context, courseID string) ([]classroom.Student, error) {
	var list []classroom.Student
	err := s.classroom.Courses.Students.List(courseID).
		Pages(ctx, func(resp *api.ListStudentsResponse) error {
			for _, st := range resp.Students {
				list = append(list, fromStudent(st))
			}
			return nil
		})
	if err != nil {
		return nil, wrap(classroom.OpListStudents, err)
	}
	return list, nil
}

func (s *Service) GetStudent(ctx context.Context, courseID, userID string) (*classroom.Student, error) {
	st, err := s.classroom.Courses.Students.Get(courseID, userID).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpGetStudent, err)
	}
	student := fromStudent(st)
	return &student, nil
}

func (s *Service) CreateStudent(ctx context.Context, courseID, userID string) (*classroom.Student, error) {
	st, err := s.classroom.Courses.Students.Create(courseID, &api.Student{UserId: userID}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpCreateStudent, err)
	}
	student := fromStudent(st)
	return &student, nil
}

func (s *Service) ListCourseWork(ctx context.Context, courseID string) ([]classroom.CourseWork, error) {
	var list []classroom.CourseWork
	err := s.classroom.Courses.CourseWork.List(courseID).
		OrderBy("dueDate asc").
		Pages(ctx, func(resp *api.ListCourseWorkResponse) error {
			for _, w := range resp.CourseWork {
				list = append(list, fromCourseWork(w))
			}
			return nil
		})
	if err != nil {
		return nil, wrap(classroom.OpListCourseWork, err)
	}
	return list, nil
}

func (s *Service) CreateCourseWork(ctx context.Context, courseID string, nw classroom.NewCourseWork) (*classroom.CourseWork, error) {
	body := &api.CourseWork{
		Title:       nw.Title,
		Description: nw.Description,
		WorkType:    nw.WorkType,
		State:       nw.State,
		Materials:   toMaterials(nw.Materials),
	}
	if !nw.Due.IsZero() {
		body.DueDate, body.DueTime = toDue(nw.Due)
	}

	w, err := s.classroom.Courses.CourseWork.Create(courseID, body).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpCreateCourseWork, err)
	}
	created := fromCourseWork(w)
	return &created, nil
}

func (s *Service) ListCourseWorkMaterials(ctx context.Context, courseID string) ([]classroom.CourseWorkMaterial, error) {
	var list []classroom.CourseWorkMaterial
	err := s.classroom.Courses.CourseWorkMaterials.List(courseID).
		OrderBy("updateTime desc").
		Pages(ctx, func(resp *api.ListCourseWorkMaterialResponse) error {
			for _, m := range resp.CourseWorkMaterial {
				list = append(list, fromCourseWorkMaterial(m))
			}
			return nil
		})
	if err != nil {
		return nil, wrap(classroom.OpListCourseWorkMaterials, err)
	}
	return list, nil
}

func (s *Service) CreateCourseWorkMaterial(ctx context.Context, courseID string, nm classroom.NewCourseWorkMaterial) (*classroom.CourseWorkMaterial, error) {
	m, err := s.classroom.Courses.CourseWorkMaterials.Create(courseID, &api.CourseWorkMaterial{
		Title:       nm.Title,
		Description: nm.Description,
		Materials:   toMaterials(nm.Materials),
	}).Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpCreateCourseWorkMaterial, err)
	}
	created := fromCourseWorkMaterial(m)
	return &created, nil
}

func (s *Service) ListMySubmissions(ctx context.Context, courseID, courseWorkID string) ([]classroom.Submission, error) {
	var list []classroom.Submission
	err := s.classroom.Courses.CourseWork.StudentSubmissions.List(courseID, courseWorkID).
		UserId(classroom.Me).
		Pages(ctx, func(resp *api.ListStudentSubmissionsResponse) error {
			for _, sub := range resp.StudentSubmissions {
				list = append(list, fromSubmission(sub))
			}
			return nil
		})
	if err != nil {
		return nil, wrap(classroom.OpListMySubmissions, err)
	}
	return list, nil
}

func (s *Service) UserInfo(ctx context.Context) (*classroom.UserInfo, error) {
	u, err := s.userinfo.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, wrap(classroom.OpUserInfo, err)
	}
	return &classroom.UserInfo{ID: u.Id, Email: u.Email, Name: u.Name, Picture: u.Picture}, nil
}

// wrap classifies err by the status the API answered with.
func wrap(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return classroom.NewError(op, classroom.KindFromStatus(gerr.Code), err)
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return classroom.NewError(op, classroom.KindUnauthenticated, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return classroom.NewError(op, classroom.KindUnavailable, err)
	}
	return classroom.NewError(op, classroom.KindUnknown, err)
}
