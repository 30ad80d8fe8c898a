package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/jrsteele09/eduflow/sessions"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

var ErrDueDateInPast = errors.New("due date cannot be in the past")

// Assignment due time applied to the chosen due date.
const (
	dueHour   = 23
	dueMinute = 59
)

// Mode is which part of a dashboard is shown.
type Mode string

const (
	ModeCourseList   Mode = "courses"
	ModeCreateCourse Mode = "create_course"
	ModeCourse       Mode = "course"
)

// InstructorPage is the view model of the instructor dashboard.
type InstructorPage struct {
	Email string
	Flash sessions.Flash
	Mode  Mode

	Courses []classroom.Course

	Course        *classroom.Course
	Tabs          []Tab
	Tab           Tab
	Announcements []classroom.Announcement
	Students      []classroom.Student
	Materials     []classroom.CourseWorkMaterial
	Assignments   []classroom.CourseWork
	MinDueDate    string

	// Error is a failed fetch, shown inline while the rest of the page renders.
	Error string
}

// Instructor renders the instructor dashboard and executes its intents.
type Instructor struct {
	validator *Validator
}

func NewInstructor(v *Validator) *Instructor {
	return &Instructor{validator: v}
}

// Page fetches what the current mode and tab need. Only the active tab is fetched.
func (in *Instructor) Page(ctx context.Context, c Context, svc classroom.Service, tab Tab) InstructorPage {
	page := InstructorPage{
		Email: userEmail(ctx, c, svc),
		Flash: c.Session.Flags.Flash,
	}

	switch {
	case c.Session.Flags.ShowCreateCourse:
		page.Mode = ModeCreateCourse

	case c.Session.CourseID != "":
		page.Mode = ModeCourse
		page.Tabs = InstructorTabs
		page.Tab = ParseTab(string(tab), InstructorTabs)
		page.MinDueDate = c.Now.UTC().Format(dateLayout)

		course, err := svc.GetCourse(ctx, c.Session.CourseID)
		if err != nil {
			page.Error = DescribeError(in.validator, "loading course", err).Message
			return page
		}
		page.Course = course
		in.loadTab(ctx, svc, &page)

	default:
		page.Mode = ModeCourseList
		courses, err := svc.ListCourses(ctx, classroom.CourseFilter{TeacherID: classroom.Me})
		if err != nil {
			page.Error = DescribeError(in.validator, "loading courses", err).Message
			return page
		}
		page.Courses = courses
	}
	return page
}

func (in *Instructor) loadTab(ctx context.Context, svc classroom.Service, page *InstructorPage) {
	courseID := page.Course.ID
	var err error
	switch page.Tab {
	case TabAnnouncements:
		page.Announcements, err = svc.ListAnnouncements(ctx, courseID)
	case TabStudents:
		page.Students, err = svc.ListStudents(ctx, courseID)
	case TabMaterials:
		page.Materials, err = svc.ListCourseWorkMaterials(ctx, courseID)
	case TabAssignments:
		page.Assignments, err = svc.ListCourseWork(ctx, courseID)
	}
	if err != nil {
		page.Error = DescribeError(in.validator, "loading "+page.Tab.Label(), err).Message
	}
}

// Handle executes an intent and returns the next context with the outcome attached as a flash.
func (in *Instructor) Handle(ctx context.Context, c Context, svc classroom.Service, intent Intent) (Context, Outcome) {
	next, outcome := in.handle(ctx, c, svc, intent)
	return next.WithOutcome(outcome), outcome
}

func (in *Instructor) handle(ctx context.Context, c Context, svc classroom.Service, intent Intent) (Context, Outcome) {
	state := c.Session

	switch it := intent.(type) {
	case ShowCreateCourse:
		return c.WithSession(state.WithCreateCourse(true)), Outcome{}
	case CancelCreateCourse:
		return c.WithSession(state.WithCreateCourse(false)), Outcome{}
	case BackToCourses:
		return c.WithSession(state.WithCourse("")), Outcome{}
	case OpenCourse:
		if err := in.validator.Struct(it); err != nil {
			return c, DescribeError(in.validator, "opening course", err)
		}
		return c.WithSession(state.WithCourse(it.CourseID)), Outcome{}

	case CreateCourse:
		return in.createCourse(ctx, c, svc, it)
	}

	if state.CourseID == "" {
		return c, Outcome{Kind: OutcomeError, Message: "Select a course first."}
	}

	switch it := intent.(type) {
	case PostAnnouncement:
		return in.postAnnouncement(ctx, c, svc, it)
	case EnrollStudent:
		return in.enrollStudent(ctx, c, svc, it)
	case UploadMaterial:
		return in.uploadMaterial(ctx, c, svc, it)
	case CreateAssignment:
		return in.createAssignment(ctx, c, svc, it)
	default:
		return c, DescribeError(in.validator, "handling request",
			apperrors.Wrapf(apperrors.ErrUnsupported, "action %q", intent.Action()))
	}
}

func (in *Instructor) createCourse(ctx context.Context, c Context, svc classroom.Service, it CreateCourse) (Context, Outcome) {
	if err := in.validator.Struct(it); err != nil {
		return c, DescribeError(in.validator, "creating course", err)
	}

	course, err := svc.CreateCourse(ctx, classroom.NewCourse{
		Name:               it.Title,
		Section:            it.Section,
		DescriptionHeading: "Welcome to " + it.Title,
		Description:        it.Description,
		Room:               it.Room,
		OwnerID:            classroom.Me,
		State:              classroom.CourseStateProvisioned,
	})
	if err != nil {
		return c, DescribeError(in.validator, "creating course", err)
	}

	log.Info().Str("course", course.ID).Str("name", course.Name).Msg("course created")
	return c.WithSession(c.Session.WithCreateCourse(false)), success("Course created successfully! ID: %s", course.ID)
}

func (in *Instructor) postAnnouncement(ctx context.Context, c Context, svc classroom.Service, it PostAnnouncement) (Context, Outcome) {
	if err := in.validator.Struct(it); err != nil {
		return c, DescribeError(in.validator, "posting announcement", err)
	}
	_, err := svc.CreateAnnouncement(ctx, c.Session.CourseID, classroom.NewAnnouncement{
		Text:  it.Text,
		State: classroom.StatePublished,
	})
	if err != nil {
		return c, DescribeError(in.validator, "posting announcement", err)
	}
	return c, success("Announcement posted!")
}

// enrollStudent checks the roster before creating, so a second enrollment only warns.
func (in *Instructor) enrollStudent(ctx context.Context, c Context, svc classroom.Service, it EnrollStudent) (Context, Outcome) {
	if err := in.validator.Struct(it); err != nil {
		return c, DescribeError(in.validator, "enrolling student", err)
	}
	courseID := c.Session.CourseID

	_, err := svc.GetStudent(ctx, courseID, it.Email)
	switch {
	case err == nil:
		return c, warning("Student already enrolled")
	case !classroom.IsNotFound(err):
		return c, DescribeError(in.validator, "enrolling student", err)
	}

	if _, err := svc.CreateStudent(ctx, courseID, it.Email); err != nil {
		if classroom.KindOf(err) == classroom.KindAlreadyExists {
			return c, warning("Student already enrolled")
		}
		return c, DescribeError(in.validator, "enrolling student", err)
	}
	return c, success("Student %s enrolled successfully", it.Email)
}

func (in *Instructor) uploadMaterial(ctx context.Context, c Context, svc classroom.Service, it UploadMaterial) (Context, Outcome) {
	if err := in.validator.Struct(it); err != nil {
		return c, DescribeError(in.validator, "uploading materials", err)
	}

	var material classroom.Material
	switch it.Kind {
	case MaterialKindDrive:
		material = driveFile(it.DriveFileID)
	case MaterialKindLink:
		material = classroom.Link{URL: it.URL, Title: it.LinkTitle}
	}

	_, err := svc.CreateCourseWorkMaterial(ctx, c.Session.CourseID, classroom.NewCourseWorkMaterial{
		Title:       it.Title,
		Description: it.Description,
		Materials:   []classroom.Material{material},
	})
	if err != nil {
		return c, DescribeError(in.validator, "uploading materials", err)
	}
	return c, success("Materials uploaded successfully!")
}

func (in *Instructor) createAssignment(ctx context.Context, c Context, svc classroom.Service, it CreateAssignment) (Context, Outcome) {
	if err := in.validator.Struct(it); err != nil {
		return c, DescribeError(in.validator, "creating assignment", err)
	}
	due, err := dueAt(it.DueDate, c.Now)
	if err != nil {
		return c, DescribeError(in.validator, "creating assignment", err)
	}

	var materials []classroom.Material
	if it.DriveFileID != "" {
		materials = append(materials, driveFile(it.DriveFileID))
	}
	if it.URL != "" && it.LinkTitle != "" {
		materials = append(materials, classroom.Link{URL: it.URL, Title: it.LinkTitle})
	}

	_, err = svc.CreateCourseWork(ctx, c.Session.CourseID, classroom.NewCourseWork{
		Title:       it.Title,
		Description: it.Description,
		WorkType:    classroom.WorkTypeAssignment,
		State:       classroom.StatePublished,
		Due:         due,
		Materials:   materials,
	})
	if err != nil {
		return c, DescribeError(in.validator, "creating assignment", err)
	}
	return c, success("Assignment created successfully!")
}

func driveFile(id string) classroom.DriveFile {
	return classroom.DriveFile{ID: id, Title: "Drive File", ShareMode: classroom.ShareModeView}
}

// dueAt resolves a YYYY-MM-DD date to 23:59 UTC on that day. Dates before today are rejected.
func dueAt(date string, now time.Time) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due date: %w", err)
	}
	if date < now.UTC().Format(dateLayout) {
		return time.Time{}, ErrDueDateInPast
	}
	return time.Date(day.Year(), day.Month(), day.Day(), dueHour, dueMinute, 0, 0, time.UTC), nil
}

// userEmail asks the remote API who is signed in and falls back to the credential's identity.
func userEmail(ctx context.Context, c Context, svc classroom.Service) string {
	info, err := svc.UserInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch user info")
		return c.Email()
	}
	return info.Email
}
