package googleclassroom_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/classroom"
	"github.com/jrsteele09/eduflow/classroom/googleclassroom"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    404,
			"message": "Requested entity was not found.",
			"status":  "NOT_FOUND",
		},
	})
}

func setupService(t *testing.T, mux *http.ServeMux) *googleclassroom.Service {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc, err := googleclassroom.New(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return svc
}

func TestListCourses_FollowsPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "me", r.URL.Query().Get("teacherId"))
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"courses":       []map[string]string{{"id": "c1", "name": "Algorithms 101", "creationTime": "2024-09-01T10:00:00.123Z"}},
				"nextPageToken": "page-2",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"courses": []map[string]string{{"id": "c2", "name": "Compilers"}},
		})
	})
	svc := setupService(t, mux)

	courses, err := svc.ListCourses(context.Background(), classroom.CourseFilter{TeacherID: classroom.Me})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "c1", courses[0].ID)
	require.Equal(t, 2024, courses[0].CreationTime.Year())
	require.Equal(t, "Compilers", courses[1].Name)
}

func TestCreateCourse_SendsFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/courses", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Algorithms 101", body["name"])
		require.Equal(t, "Welcome to Algorithms 101", body["descriptionHeading"])
		require.Equal(t, "me", body["ownerId"])
		require.Equal(t, "PROVISIONED", body["courseState"])
		body["id"] = "new-course"
		writeJSON(w, http.StatusOK, body)
	})
	svc := setupService(t, mux)

	course, err := svc.CreateCourse(context.Background(), classroom.NewCourse{
		Name:               "Algorithms 101",
		Section:            "Fall",
		DescriptionHeading: "Welcome to Algorithms 101",
		OwnerID:            classroom.Me,
		State:              classroom.CourseStateProvisioned,
	})
	require.NoError(t, err)
	require.Equal(t, "new-course", course.ID)
	require.Equal(t, "PROVISIONED", course.State)
}

func TestGetStudent_NotEnrolled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/c1/students/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("userId") == "ada@example.com" {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"courseId": "c1",
				"userId":   "u1",
				"profile": map[string]interface{}{
					"emailAddress": "ada@example.com",
					"name":         map[string]string{"fullName": "Ada Lovelace"},
				},
			})
			return
		}
		notFound(w)
	})
	svc := setupService(t, mux)
	ctx := context.Background()

	st, err := svc.GetStudent(ctx, "c1", "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", st.FullName)

	_, err = svc.GetStudent(ctx, "c1", "bob@example.com")
	require.Error(t, err)
	require.True(t, classroom.IsNotFound(err))

	var cerr *classroom.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, classroom.OpGetStudent, cerr.Op)
}

func TestCreateStudent_AlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/courses/c1/students", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": map[string]interface{}{"code": 409, "message": "Requested entity already exists", "status": "ALREADY_EXISTS"},
		})
	})
	svc := setupService(t, mux)

	_, err := svc.CreateStudent(context.Background(), "c1", "ada@example.com")
	require.Equal(t, classroom.KindAlreadyExists, classroom.KindOf(err))
}

func TestCourseWork_DueAndMaterials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/courses/c1/courseWork", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "dueDate asc", r.URL.Query().Get("orderBy"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"courseWork": []map[string]interface{}{
				{
					"id":      "w1",
					"title":   "Homework 1",
					"dueDate": map[string]int{"year": 2026, "month": 3, "day": 14},
					"materials": []map[string]interface{}{
						{"driveFile": map[string]interface{}{"driveFile": map[string]string{"id": "f1", "title": "Drive File"}, "shareMode": "VIEW"}},
						{"link": map[string]string{"url": "https://example.com", "title": "Example"}},
						{"youtubeVideo": map[string]string{"id": "dQw4w9WgXcQ"}},
					},
				},
				{"id": "w2", "title": "Reading"},
			},
		})
	})
	mux.HandleFunc("POST /v1/courses/c1/courseWork", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]interface{}{"hours": float64(23), "minutes": float64(59)}, body["dueTime"])
		require.Equal(t, "ASSIGNMENT", body["workType"])
		body["id"] = "w3"
		writeJSON(w, http.StatusOK, body)
	})
	svc := setupService(t, mux)
	ctx := context.Background()

	work, err := svc.ListCourseWork(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, work, 2)
	require.Equal(t, time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), work[0].Due)
	require.Equal(t, []classroom.Material{
		classroom.DriveFile{ID: "f1", Title: "Drive File", ShareMode: "VIEW"},
		classroom.Link{URL: "https://example.com", Title: "Example"},
		classroom.YouTubeVideo{ID: "dQw4w9WgXcQ"},
	}, work[0].Materials)
	require.False(t, work[1].HasDue())

	created, err := svc.CreateCourseWork(ctx, "c1", classroom.NewCourseWork{
		Title:    "Homework 2",
		WorkType: classroom.WorkTypeAssignment,
		State:    classroom.StatePublished,
		Due:      time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, "w3", created.ID)
	require.Equal(t, time.Date(2026, 4, 1, 23, 59, 0, 0, time.UTC), created.Due)
}

func TestUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"id": "42", "email": "ada@example.com", "name": "Ada"})
	})
	svc := setupService(t, mux)

	info, err := svc.UserInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", info.Email)
}
