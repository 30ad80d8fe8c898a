package googleclassroom

import (
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/internal/utils"
	api "google.golang.org/api/classroom/v1"
)

// Default due time when the API returns a date without one.
const (
	defaultDueHour   = 23
	defaultDueMinute = 59
)

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func fromCourse(c *api.Course) classroom.Course {
	return classroom.Course{
		ID:                 c.Id,
		Name:               c.Name,
		Section:            c.Section,
		DescriptionHeading: c.DescriptionHeading,
		Description:        c.Description,
		Room:               c.Room,
		OwnerID:            c.OwnerId,
		State:              c.CourseState,
		AlternateLink:      c.AlternateLink,
		CreationTime:       parseTime(c.CreationTime),
	}
}

func fromAnnouncement(a *api.Announcement) classroom.Announcement {
	return classroom.Announcement{
		ID:           a.Id,
		CourseID:     a.CourseId,
		Text:         a.Text,
		State:        a.State,
		Materials:    fromMaterials(a.Materials),
		CreationTime: parseTime(a.CreationTime),
		UpdateTime:   parseTime(a.UpdateTime),
	}
}

func fromStudent(s *api.Student) classroom.Student {
	profile := utils.Value(s.Profile)
	return classroom.Student{
		CourseID: s.CourseId,
		UserID:   s.UserId,
		FullName: utils.Value(profile.Name).FullName,
		Email:    profile.EmailAddress,
	}
}

func fromCourseWork(w *api.CourseWork) classroom.CourseWork {
	return classroom.CourseWork{
		ID:          w.Id,
		CourseID:    w.CourseId,
		Title:       w.Title,
		Description: w.Description,
		WorkType:    w.WorkType,
		State:       w.State,
		Due:         fromDue(w.DueDate, w.DueTime),
		MaxPoints:   w.MaxPoints,
		Materials:   fromMaterials(w.Materials),
		UpdateTime:  parseTime(w.UpdateTime),
	}
}

func fromCourseWorkMaterial(m *api.CourseWorkMaterial) classroom.CourseWorkMaterial {
	return classroom.CourseWorkMaterial{
		ID:          m.Id,
		CourseID:    m.CourseId,
		Title:       m.Title,
		Description: m.Description,
		State:       m.State,
		Materials:   fromMaterials(m.Materials),
		UpdateTime:  parseTime(m.UpdateTime),
	}
}

func fromSubmission(s *api.StudentSubmission) classroom.Submission {
	return classroom.Submission{
		ID:            s.Id,
		CourseWorkID:  s.CourseWorkId,
		UserID:        s.UserId,
		State:         classroom.SubmissionState(s.State),
		AssignedGrade: s.AssignedGrade,
		DraftGrade:    s.DraftGrade,
		Late:          s.Late,
		UpdateTime:    parseTime(s.UpdateTime),
	}
}

// fromDue combines the API's date and time of day. Due dates are in UTC.
func fromDue(d *api.Date, t *api.TimeOfDay) time.Time {
	if d == nil || d.Year == 0 {
		return time.Time{}
	}
	hour, minute := defaultDueHour, defaultDueMinute
	if t != nil {
		hour, minute = int(t.Hours), int(t.Minutes)
	}
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day), hour, minute, 0, 0, time.UTC)
}

func toDue(due time.Time) (*api.Date, *api.TimeOfDay) {
	due = due.UTC()
	return &api.Date{Year: int64(due.Year()), Month: int64(due.Month()), Day: int64(due.Day())},
		&api.TimeOfDay{Hours: int64(due.Hour()), Minutes: int64(due.Minute())}
}

func fromMaterials(in []*api.Material) []classroom.Material {
	var out []classroom.Material
	for _, m := range in {
		switch {
		case m.DriveFile != nil && m.DriveFile.DriveFile != nil:
			out = append(out, classroom.DriveFile{
				ID:        m.DriveFile.DriveFile.Id,
				Title:     m.DriveFile.DriveFile.Title,
				ShareMode: m.DriveFile.ShareMode,
			})
		case m.Link != nil:
			out = append(out, classroom.Link{URL: m.Link.Url, Title: m.Link.Title})
		case m.YoutubeVideo != nil:
			out = append(out, classroom.YouTubeVideo{ID: m.YoutubeVideo.Id, Title: m.YoutubeVideo.Title})
		}
	}
	return out
}

func toMaterials(in []classroom.Material) []*api.Material {
	var out []*api.Material
	for _, m := range in {
		switch m := m.(type) {
		case classroom.DriveFile:
			out = append(out, &api.Material{DriveFile: &api.SharedDriveFile{
				DriveFile: &api.DriveFile{Id: m.ID, Title: m.Title},
				ShareMode: m.ShareMode,
			}})
		case classroom.Link:
			out = append(out, &api.Material{Link: &api.Link{Url: m.URL, Title: m.Title}})
		case classroom.YouTubeVideo:
			out = append(out, &api.Material{YoutubeVideo: &api.YouTubeVideo{Id: m.ID}})
		}
	}
	return out
}
