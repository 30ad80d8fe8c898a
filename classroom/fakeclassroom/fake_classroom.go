package fakeclassroom

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/eduflow/classroom"
	"golang.org/x/oauth2"
)

var _ classroom.Service = (*FakeClassroom)(nil)

type course struct {
	classroom.Course
	teachers      map[string]bool
	students      []classroom.Student
	announcements []classroom.Announcement
	work          []classroom.CourseWork
	materials     []classroom.CourseWorkMaterial
	submissions   map[string][]classroom.Submission
}

// FakeClassroom is an in-memory classroom.Service for a single signed-in user.
type FakeClassroom struct {
	lock    sync.RWMutex
	me      classroom.UserInfo
	courses map[string]*course
	order   []string
	calls   map[string]int
	failOn  map[string]error
	now     func() time.Time

	// CreatedCourses records every CreateCourse request in order.
	CreatedCourses []classroom.NewCourse
}

func NewFakeClassroom(me classroom.UserInfo) *FakeClassroom {
	if me.ID == "" {
		me.ID = uuid.NewString()
	}
	return &FakeClassroom{
		me:      me,
		courses: make(map[string]*course),
		calls:   make(map[string]int),
		failOn:  make(map[string]error),
		now:     time.Now,
	}
}

// Factory returns a classroom.Factory handing out this fake.
func (f *FakeClassroom) Factory() classroom.Factory {
	return func(context.Context, oauth2.TokenSource) (classroom.Service, error) {
		return f, nil
	}
}

// FailOn makes every call to op fail with kind until ClearFailures.
func (f *FakeClassroom) FailOn(op string, kind classroom.ErrorKind) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failOn[op] = classroom.NewError(op, kind, errors.New("injected failure: "+kind.String()))
}

func (f *FakeClassroom) ClearFailures() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failOn = make(map[string]error)
}

// Calls reports how many times op was invoked.
func (f *FakeClassroom) Calls(op string) int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.calls[op]
}

// AddCourse seeds a course. The signed-in user teaches it when asTeacher is set
// and is enrolled as a student otherwise.
func (f *FakeClassroom) AddCourse(c classroom.Course, asTeacher bool) string {
	f.lock.Lock()
	defer f.lock.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.State == "" {
		c.State = classroom.CourseStateActive
	}
	if c.CreationTime.IsZero() {
		c.CreationTime = f.now()
	}
	rec := f.put(c)
	if asTeacher {
		rec.teachers[f.me.ID] = true
	} else {
		rec.students = append(rec.students, f.meAsStudent(c.ID))
	}
	return c.ID
}

func (f *FakeClassroom) AddStudent(courseID string, s classroom.Student) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if c, ok := f.courses[courseID]; ok {
		s.CourseID = courseID
		c.students = append(c.students, s)
	}
}

func (f *FakeClassroom) AddCourseWork(courseID string, w classroom.CourseWork) string {
	f.lock.Lock()
	defer f.lock.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.CourseID = courseID
	if c, ok := f.courses[courseID]; ok {
		c.work = append(c.work, w)
	}
	return w.ID
}

// SetSubmission records the signed-in user's submission for a piece of course work.
func (f *FakeClassroom) SetSubmission(courseID string, s classroom.Submission) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.UserID = f.me.ID
	if c, ok := f.courses[courseID]; ok {
		c.submissions[s.CourseWorkID] = []classroom.Submission{s}
	}
}

func (f *FakeClassroom) put(c classroom.Course) *course {
	rec := &course{
		Course:      c,
		teachers:    make(map[string]bool),
		submissions: make(map[string][]classroom.Submission),
	}
	f.courses[c.ID] = rec
	f.order = append(f.order, c.ID)
	return rec
}

func (f *FakeClassroom) meAsStudent(courseID string) classroom.Student {
	return classroom.Student{CourseID: courseID, UserID: f.me.ID, FullName: f.me.Name, Email: f.me.Email}
}

// begin counts the call and returns the injected failure, if any. Callers hold the lock.
func (f *FakeClassroom) begin(op string) error {
	f.calls[op]++
	return f.failOn[op]
}

func (f *FakeClassroom) resolve(id string) string {
	if id == classroom.Me {
		return f.me.ID
	}
	return id
}

func (f *FakeClassroom) lookup(op, id string) (*course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, classroom.NewError(op, classroom.KindNotFound, errors.New("course "+id+" not found"))
	}
	return c, nil
}

func (f *FakeClassroom) ListCourses(_ context.Context, filter classroom.CourseFilter) ([]classroom.Course, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListCourses); err != nil {
		return nil, err
	}

	teacher, student := f.resolve(filter.TeacherID), f.resolve(filter.StudentID)
	var out []classroom.Course
	for _, id := range f.order {
		c := f.courses[id]
		if teacher != "" && !c.teachers[teacher] {
			continue
		}
		if student != "" && !enrolled(c.students, student) {
			continue
		}
		out = append(out, c.Course)
	}
	return out, nil
}

func enrolled(students []classroom.Student, userID string) bool {
	for _, s := range students {
		if s.UserID == userID || strings.EqualFold(s.Email, userID) {
			return true
		}
	}
	return false
}

func (f *FakeClassroom) GetCourse(_ context.Context, courseID string) (*classroom.Course, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpGetCourse); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpGetCourse, courseID)
	if err != nil {
		return nil, err
	}
	out := c.Course
	return &out, nil
}

func (f *FakeClassroom) CreateCourse(_ context.Context, nc classroom.NewCourse) (*classroom.Course, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.CreatedCourses = append(f.CreatedCourses, nc)
	if err := f.begin(classroom.OpCreateCourse); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nc.Name) == "" {
		return nil, classroom.NewError(classroom.OpCreateCourse, classroom.KindInvalidArgument, errors.New("name is required"))
	}

	c := classroom.Course{
		ID:                 uuid.NewString(),
		Name:               nc.Name,
		Section:            nc.Section,
		DescriptionHeading: nc.DescriptionHeading,
		Description:        nc.Description,
		Room:               nc.Room,
		OwnerID:            f.resolve(nc.OwnerID),
		State:              nc.State,
		CreationTime:       f.now(),
	}
	f.put(c).teachers[c.OwnerID] = true
	return &c, nil
}

func (f *FakeClassroom) ListAnnouncements(_ context.Context, courseID string) ([]classroom.Announcement, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListAnnouncements); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpListAnnouncements, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]classroom.Announcement, 0, len(c.announcements))
	for i := len(c.announcements) - 1; i >= 0; i-- {
		out = append(out, c.announcements[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdateTime.After(out[j].UpdateTime) })
	return out, nil
}

func (f *FakeClassroom) CreateAnnouncement(_ context.Context, courseID string, na classroom.NewAnnouncement) (*classroom.Announcement, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpCreateAnnouncement); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpCreateAnnouncement, courseID)
	if err != nil {
		return nil, err
	}
	now := f.now()
	a := classroom.Announcement{
		ID:           uuid.NewString(),
		CourseID:     courseID,
		Text:         na.Text,
		State:        na.State,
		Materials:    na.Materials,
		CreationTime: now,
		UpdateTime:   now,
	}
	c.announcements = append(c.announcements, a)
	return &a, nil
}

func (f *FakeClassroom) ListStudents(_ context.Context, courseID string) ([]classroom.Student, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListStudents); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpListStudents, courseID)
	if err != nil {
		return nil, err
	}
	return append([]classroom.Student(nil), c.students...), nil
}

func (f *FakeClassroom) GetStudent(_ context.Context, courseID, userID string) (*classroom.Student, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpGetStudent); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpGetStudent, courseID)
	if err != nil {
		return nil, err
	}
	userID = f.resolve(userID)
	for _, s := range c.students {
		if s.UserID == userID || strings.EqualFold(s.Email, userID) {
			out := s
			return &out, nil
		}
	}
	return nil, classroom.NewError(classroom.OpGetStudent, classroom.KindNotFound, errors.New("student "+userID+" not enrolled"))
}

func (f *FakeClassroom) CreateStudent(_ context.Context, courseID, userID string) (*classroom.Student, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpCreateStudent); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpCreateStudent, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled(c.students, userID) {
		return nil, classroom.NewError(classroom.OpCreateStudent, classroom.KindAlreadyExists, errors.New("student "+userID+" already enrolled"))
	}
	s := classroom.Student{CourseID: courseID, UserID: uuid.NewString(), Email: userID}
	c.students = append(c.students, s)
	return &s, nil
}

func (f *FakeClassroom) ListCourseWork(_ context.Context, courseID string) ([]classroom.CourseWork, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListCourseWork); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpListCourseWork, courseID)
	if err != nil {
		return nil, err
	}
	out := append([]classroom.CourseWork(nil), c.work...)
	sort.SliceStable(out, func(i, j int) bool {
		// undated work sorts last
		if out[i].HasDue() != out[j].HasDue() {
			return out[i].HasDue()
		}
		return out[i].Due.Before(out[j].Due)
	})
	return out, nil
}

func (f *FakeClassroom) CreateCourseWork(_ context.Context, courseID string, nw classroom.NewCourseWork) (*classroom.CourseWork, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpCreateCourseWork); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpCreateCourseWork, courseID)
	if err != nil {
		return nil, err
	}
	w := classroom.CourseWork{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Title:       nw.Title,
		Description: nw.Description,
		WorkType:    nw.WorkType,
		State:       nw.State,
		Due:         nw.Due,
		Materials:   nw.Materials,
		UpdateTime:  f.now(),
	}
	c.work = append(c.work, w)
	return &w, nil
}

func (f *FakeClassroom) ListCourseWorkMaterials(_ context.Context, courseID string) ([]classroom.CourseWorkMaterial, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListCourseWorkMaterials); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpListCourseWorkMaterials, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]classroom.CourseWorkMaterial, 0, len(c.materials))
	for i := len(c.materials) - 1; i >= 0; i-- {
		out = append(out, c.materials[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdateTime.After(out[j].UpdateTime) })
	return out, nil
}

func (f *FakeClassroom) CreateCourseWorkMaterial(_ context.Context, courseID string, nm classroom.NewCourseWorkMaterial) (*classroom.CourseWorkMaterial, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpCreateCourseWorkMaterial); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpCreateCourseWorkMaterial, courseID)
	if err != nil {
		return nil, err
	}
	if len(nm.Materials) == 0 {
		return nil, classroom.NewError(classroom.OpCreateCourseWorkMaterial, classroom.KindInvalidArgument, errors.New("at least one material is required"))
	}
	m := classroom.CourseWorkMaterial{
		ID:          uuid.NewString(),
		CourseID:    courseID,
		Title:       nm.Title,
		Description: nm.Description,
		State:       classroom.StatePublished,
		Materials:   nm.Materials,
		UpdateTime:  f.now(),
	}
	c.materials = append(c.materials, m)
	return &m, nil
}

func (f *FakeClassroom) ListMySubmissions(_ context.Context, courseID, courseWorkID string) ([]classroom.Submission, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpListMySubmissions); err != nil {
		return nil, err
	}
	c, err := f.lookup(classroom.OpListMySubmissions, courseID)
	if err != nil {
		return nil, err
	}
	return append([]classroom.Submission(nil), c.submissions[courseWorkID]...), nil
}

func (f *FakeClassroom) UserInfo(_ context.Context) (*classroom.UserInfo, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := f.begin(classroom.OpUserInfo); err != nil {
		return nil, err
	}
	me := f.me
	return &me, nil
}
