package classroom

import (
	"context"

	"golang.org/x/oauth2"
)

// Operation names, used in errors and metrics.
const (
	OpListCourses              = "courses.list"
	OpGetCourse                = "courses.get"
	OpCreateCourse             = "courses.create"
	OpListAnnouncements        = "announcements.list"
	OpCreateAnnouncement       = "announcements.create"
	OpListStudents             = "students.list"
	OpGetStudent               = "students.get"
	OpCreateStudent            = "students.create"
	OpListCourseWork           = "courseWork.list"
	OpCreateCourseWork         = "courseWork.create"
	OpListCourseWorkMaterials  = "courseWorkMaterials.list"
	OpCreateCourseWorkMaterial = "courseWorkMaterials.create"
	OpListMySubmissions        = "studentSubmissions.list"
	OpUserInfo                 = "userinfo.get"
)

// Service is the remote education API. Every method is one synchronous call
// (list methods follow pagination) and failures are *Error.
type Service interface {
	ListCourses(ctx context.Context, filter CourseFilter) ([]Course, error)
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	CreateCourse(ctx context.Context, c NewCourse) (*Course, error)

	// ListAnnouncements returns the newest first.
	ListAnnouncements(ctx context.Context, courseID string) ([]Announcement, error)
	CreateAnnouncement(ctx context.Context, courseID string, a NewAnnouncement) (*Announcement, error)

	ListStudents(ctx context.Context, courseID string) ([]Student, error)
	// GetStudent fails with KindNotFound when userID is not enrolled.
	GetStudent(ctx context.Context, courseID, userID string) (*Student, error)
	CreateStudent(ctx context.Context, courseID, userID string) (*Student, error)

	// ListCourseWork returns the earliest due first.
	ListCourseWork(ctx context.Context, courseID string) ([]CourseWork, error)
	CreateCourseWork(ctx context.Context, courseID string, w NewCourseWork) (*CourseWork, error)

	ListCourseWorkMaterials(ctx context.Context, courseID string) ([]CourseWorkMaterial, error)
	CreateCourseWorkMaterial(ctx context.Context, courseID string, m NewCourseWorkMaterial) (*CourseWorkMaterial, error)

	ListMySubmissions(ctx context.Context, courseID, courseWorkID string) ([]Submission, error)

	UserInfo(ctx context.Context) (*UserInfo, error)
}

// Factory builds a Service that authorizes its calls with ts.
type Factory func(ctx context.Context, ts oauth2.TokenSource) (Service, error)
