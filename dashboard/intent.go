package dashboard

import (
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/eduflow/internal/errors"
)

// Intent is a user action decoded from a submitted form.
type Intent interface {
	Action() string
}

// Form actions, carried in the "action" field.
const (
	ActionShowCreateCourse   = "show_create_course"
	ActionCancelCreateCourse = "cancel_create_course"
	ActionOpenCourse         = "open_course"
	ActionBackToCourses      = "back_to_courses"
	ActionCreateCourse       = "create_course"
	ActionPostAnnouncement   = "post_announcement"
	ActionEnrollStudent      = "enroll_student"
	ActionUploadMaterial     = "upload_material"
	ActionCreateAssignment   = "create_assignment"
)

// Material kinds offered by the upload form.
const (
	MaterialKindDrive = "drive"
	MaterialKindLink  = "link"
)

type ShowCreateCourse struct{}

type CancelCreateCourse struct{}

type OpenCourse struct {
	CourseID string `form:"course_id" validate:"required"`
}

type BackToCourses struct{}

type CreateCourse struct {
	Title       string `form:"title" validate:"required"`
	Section     string `form:"section"`
	Description string `form:"description"`
	Room        string `form:"room"`
}

type PostAnnouncement struct {
	Text string `form:"text" validate:"required"`
}

type EnrollStudent struct {
	Email string `form:"email" validate:"required"`
}

type UploadMaterial struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Kind        string `form:"kind" validate:"required,oneof=drive link"`
	DriveFileID string `form:"drive_file_id" validate:"required_if=Kind drive"`
	URL         string `form:"url" validate:"required_if=Kind link"`
	LinkTitle   string `form:"link_title" validate:"required_if=Kind link"`
}

// CreateAssignment attaches a drive file and a link when given. DueDate is YYYY-MM-DD.
type CreateAssignment struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	DueDate     string `form:"due_date" validate:"required,datetime=2006-01-02"`
	DriveFileID string `form:"drive_file_id"`
	URL         string `form:"url" validate:"required_with=LinkTitle"`
	LinkTitle   string `form:"link_title" validate:"required_with=URL"`
}

func (ShowCreateCourse) Action() string   { return ActionShowCreateCourse }
func (CancelCreateCourse) Action() string { return ActionCancelCreateCourse }
func (OpenCourse) Action() string         { return ActionOpenCourse }
func (BackToCourses) Action() string      { return ActionBackToCourses }
func (CreateCourse) Action() string       { return ActionCreateCourse }
func (PostAnnouncement) Action() string   { return ActionPostAnnouncement }
func (EnrollStudent) Action() string      { return ActionEnrollStudent }
func (UploadMaterial) Action() string     { return ActionUploadMaterial }
func (CreateAssignment) Action() string   { return ActionCreateAssignment }

// DecodeIntent builds the intent named by the form's action field. Values are trimmed.
func DecodeIntent(form url.Values) (Intent, error) {
	get := func(key string) string { return strings.TrimSpace(form.Get(key)) }

	switch action := get("action"); action {
	case ActionShowCreateCourse:
		return ShowCreateCourse{}, nil
	case ActionCancelCreateCourse:
		return CancelCreateCourse{}, nil
	case ActionOpenCourse:
		return OpenCourse{CourseID: get("course_id")}, nil
	case ActionBackToCourses:
		return BackToCourses{}, nil
	case ActionCreateCourse:
		return CreateCourse{
			Title:       get("title"),
			Section:     get("section"),
			Description: get("description"),
			Room:        get("room"),
		}, nil
	case ActionPostAnnouncement:
		return PostAnnouncement{Text: get("text")}, nil
	case ActionEnrollStudent:
		return EnrollStudent{Email: get("email")}, nil
	case ActionUploadMaterial:
		return UploadMaterial{
			Title:       get("title"),
			Description: get("description"),
			Kind:        get("kind"),
			DriveFileID: get("drive_file_id"),
			URL:         get("url"),
			LinkTitle:   get("link_title"),
		}, nil
	case ActionCreateAssignment:
		return CreateAssignment{
			Title:       get("title"),
			Description: get("description"),
			DueDate:     get("due_date"),
			DriveFileID: get("drive_file_id"),
			URL:         get("url"),
			LinkTitle:   get("link_title"),
		}, nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidForm, "unknown action %q", action)
	}
}
