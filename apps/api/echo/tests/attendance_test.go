package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/storage/database/dummy"
	"github.com/campusflow/campusflow/tests"
)

func createCourse(t *testing.T, userID string, schedule map[string]int) attendance.Course {
	t.Helper()
	c, err := dummydb.NewCourseRepository(db).CreateCourse(context.Background(), attendance.Course{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          "Algorithms",
		Schedule:      schedule,
		MinAttendance: attendance.DefaultMinAttendance,
		AttendanceLog: map[string]bool{},
		CreatedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)
	return c
}

func Test_attendanceApi_create(t *testing.T) {
	db.Reset()

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	token := getToken(t, student)
	path := "/v1/courses"

	runHTTPTests(t, []httpTest{
		{name: "Auth required", method: http.MethodPost, path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Name required", method: http.MethodPost, path: path, token: token,
			body:     []byte(`{"schedule": {"Mon": 2}}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "Weekend class", method: http.MethodPost, path: path, token: token,
			body:     []byte(`{"name": "Maths", "schedule": {"Sat": 2}}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "No class hours", method: http.MethodPost, path: path, token: token,
			body:     []byte(`{"name": "Maths", "schedule": {"Mon": 0}}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"schedule": "add at least one class hour"}),
		},
	})

	t.Run("Created", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, token, []byte(`{"name": "  Maths ", "schedule": {"Mon": 2, "Wed": 1}}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got attendance.CourseDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Maths", got.Name)
		assert.Equal(t, map[string]int{"Mon": 2, "Tue": 0, "Wed": 1, "Thu": 0, "Fri": 0}, got.Schedule)
		assert.Equal(t, attendance.Stats{WeeklyHours: 3, MinRequired: attendance.DefaultMinAttendance}, got.Stats)
	})
}

func Test_attendanceApi_query(t *testing.T) {
	db.Reset()

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	other := testutil.CreateUser(t, usrRepo, "King", "king@test.cd", true)
	course := createCourse(t, student.ID, map[string]int{"Mon": 1, "Tue": 0, "Wed": 0, "Thu": 0, "Fri": 0})
	createCourse(t, other.ID, map[string]int{"Mon": 1, "Tue": 0, "Wed": 0, "Thu": 0, "Fri": 0})

	runHTTPTests(t, []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/courses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Own courses only", method: http.MethodGet, path: "/v1/courses", token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, []attendance.CourseDetail{course.Detail()}),
		},
	})
}

func Test_attendanceApi_destroy(t *testing.T) {
	db.Reset()

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	other := testutil.CreateUser(t, usrRepo, "King", "king@test.cd", true)
	course := createCourse(t, student.ID, map[string]int{"Mon": 1})
	notMine := createCourse(t, other.ID, map[string]int{"Mon": 1})
	token := getToken(t, student)
	notFound := marchallObj(t, httpErr{Error: attendance.ErrNotFound.Error()})

	runHTTPTests(t, []httpTest{
		{name: "Not a uuid", method: http.MethodDelete, path: "/v1/courses/lol", token: token, wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Other user's course", method: http.MethodDelete, path: "/v1/courses/" + notMine.ID, token: token, wantCode: http.StatusNotFound, wantData: notFound},
		{name: "Deleted", method: http.MethodDelete, path: "/v1/courses/" + course.ID, token: token, wantCode: http.StatusNoContent},
		{name: "Already deleted", method: http.MethodDelete, path: "/v1/courses/" + course.ID, token: token, wantCode: http.StatusNotFound, wantData: notFound},
	})
}

func Test_attendanceApi_toggleAttendance(t *testing.T) {
	db.Reset()

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero@test.cd", true)
	course := createCourse(t, student.ID, map[string]int{"Mon": 2, "Tue": 0, "Wed": 1, "Thu": 0, "Fri": 0})
	token := getToken(t, student)
	path := "/v1/courses/" + course.ID + "/attendance"
	monday := []byte(`{"date": "2026-10-12"}`)

	attended := course
	attended.AttendedClasses, attended.TotalClasses = 2, 2
	attended.AttendanceLog = map[string]bool{"2026-10-12": true}

	unmarked := course
	unmarked.AttendanceLog = map[string]bool{"2026-10-12": false}

	runHTTPTests(t, []httpTest{
		{
			name: "Invalid date", method: http.MethodPost, path: path, token: token, body: []byte(`{"date": "12/10/2026"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"date": "date must be a date in YYYY-MM-DD format"}),
		},
		{
			name: "No class on saturdays", method: http.MethodPost, path: path, token: token, body: []byte(`{"date": "2026-10-17"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"date": attendance.ErrNoClass.Error()}),
		},
		{
			name: "Unknown course", method: http.MethodPost, path: "/v1/courses/" + uuid.New().String() + "/attendance", token: token, body: monday,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: attendance.ErrNotFound.Error()}),
		},
		{
			name: "Marked", method: http.MethodPost, path: path, token: token, body: monday,
			wantCode: http.StatusOK, wantData: marchallObj(t, attended.Detail()),
		},
		{
			name: "Unmarked", method: http.MethodPost, path: path, token: token, body: monday,
			wantCode: http.StatusOK, wantData: marchallObj(t, unmarked.Detail()),
		},
	})
}
