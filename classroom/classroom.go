package classroom

import (
	"fmt"
	"time"
)

// Me is the alias the remote API resolves to the authenticated user.
const Me = "me"

const (
	CourseStateProvisioned = "PROVISIONED"
	CourseStateActive      = "ACTIVE"

	StatePublished = "PUBLISHED"

	WorkTypeAssignment = "ASSIGNMENT"
)

type Course struct {
	ID                 string
	Name               string
	Section            string
	DescriptionHeading string
	Description        string
	Room               string
	OwnerID            string
	State              string
	AlternateLink      string
	CreationTime       time.Time
}

type NewCourse struct {
	Name               string
	Section            string
	DescriptionHeading string
	Description        string
	Room               string
	OwnerID            string
	State              string
}

// CourseFilter selects courses by participant. "me" is accepted for either id.
type CourseFilter struct {
	TeacherID string
	StudentID string
}

type Announcement struct {
	ID           string
	CourseID     string
	Text         string
	State        string
	Materials    []Material
	CreationTime time.Time
	UpdateTime   time.Time
}

type NewAnnouncement struct {
	Text      string
	State     string
	Materials []Material
}

type Student struct {
	CourseID string
	UserID   string
	FullName string
	Email    string
}

// CourseWork is an assignment. A zero Due means the work has no due date.
type CourseWork struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	WorkType    string
	State       string
	Due         time.Time
	MaxPoints   float64
	Materials   []Material
	UpdateTime  time.Time
}

func (w CourseWork) HasDue() bool {
	return !w.Due.IsZero()
}

type NewCourseWork struct {
	Title       string
	Description string
	WorkType    string
	State       string
	Due         time.Time
	Materials   []Material
}

type CourseWorkMaterial struct {
	ID          string
	CourseID    string
	Title       string
	Description string
	State       string
	Materials   []Material
	UpdateTime  time.Time
}

type NewCourseWorkMaterial struct {
	Title       string
	Description string
	Materials   []Material
}

type SubmissionState string

const (
	SubmissionNew                SubmissionState = "NEW"
	SubmissionCreated            SubmissionState = "CREATED"
	SubmissionTurnedIn           SubmissionState = "TURNED_IN"
	SubmissionReturned           SubmissionState = "RETURNED"
	SubmissionReclaimedByStudent SubmissionState = "RECLAIMED_BY_STUDENT"
)

// Submission is the caller's own submission for a piece of course work.
// Grades are zero when not assigned.
type Submission struct {
	ID            string
	CourseWorkID  string
	UserID        string
	State         SubmissionState
	AssignedGrade float64
	DraftGrade    float64
	Late          bool
	UpdateTime    time.Time
}

func (s *Submission) TurnedIn() bool {
	return s != nil && s.State == SubmissionTurnedIn
}

type UserInfo struct {
	ID      string
	Email   string
	Name    string
	Picture string
}

// Material is one attachment. The concrete type is DriveFile, Link or YouTubeVideo.
type Material interface {
	fmt.Stringer
	Href() string
	material()
}

const ShareModeView = "VIEW"

type DriveFile struct {
	ID        string
	Title     string
	ShareMode string
}

func (d DriveFile) String() string { return "Google Drive File" }
func (d DriveFile) Href() string   { return "https://drive.google.com/file/d/" + d.ID + "/view" }
func (DriveFile) material()        {}

type Link struct {
	URL   string
	Title string
}

func (l Link) String() string { return "External Link" }
func (l Link) Href() string   { return l.URL }
func (Link) material()        {}

// YouTubeVideo is only ever read back from the remote API.
type YouTubeVideo struct {
	ID    string
	Title string
}

func (y YouTubeVideo) String() string { return "YouTube Video" }
func (y YouTubeVideo) Href() string   { return "https://youtu.be/" + y.ID }
func (YouTubeVideo) material()        {}
