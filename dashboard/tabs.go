package dashboard

type Tab string

const (
	TabAnnouncements Tab = "announcements"
	TabStudents      Tab = "students"
	TabDetails       Tab = "details"
	TabMaterials     Tab = "materials"
	TabAssignments   Tab = "assignments"
)

var (
	InstructorTabs = []Tab{TabAnnouncements, TabStudents, TabDetails, TabMaterials, TabAssignments}
	StudentTabs    = []Tab{TabAnnouncements, TabAssignments, TabMaterials}
)

func (t Tab) Label() string {
	switch t {
	case TabAnnouncements:
		return "Announcements"
	case TabStudents:
		return "Students"
	case TabDetails:
		return "Course Details"
	case TabMaterials:
		return "Materials"
	case TabAssignments:
		return "Assignments"
	default:
		return string(t)
	}
}

// ParseTab returns s when it is one of allowed, otherwise the first allowed tab.
func ParseTab(s string, allowed []Tab) Tab {
	for _, t := range allowed {
		if string(t) == s {
			return t
		}
	}
	return allowed[0]
}
