package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	progressRoutes "lms/routers/progressRoutes"
	protectedRoutes "lms/routers/protectedRoutes"
	userRoutes "lms/routers/userRoutes"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	m.Run()
}

// newTestApp wires the full route surface against an isolated in-memory
// database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app, db)
	protectedRoutes.SetupProtectedRoutes(app)
	userRoutes.SetupUserRoutes(app, db)
	courseRoutes.SetupCourseRoutes(app, db)
	progressRoutes.SetupProgressRoutes(app, db)
	certificateRoutes.SetupCertificateRoutes(app, db)

	return app, db
}

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func register(t *testing.T, app *fiber.App, email string) (uint, string) {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)

	user := resp.Data["user"].(map[string]interface{})
	return uint(user["id"].(float64)), resp.Data["token"].(string)
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status, resp.Message)
	return resp.Data["token"].(string)
}

// registerWithRole creates an account, rewrites its role directly and
// logs in again so the token carries the new role.
func registerWithRole(t *testing.T, app *fiber.App, db *gorm.DB, email, role string) (uint, string) {
	t.Helper()

	id, _ := register(t, app, email)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).Update("role", role).Error)
	return id, login(t, app, email)
}

func createCourse(t *testing.T, app *fiber.App, mentorToken, title string) uint {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, "/api/courses", mentorToken, fiber.Map{
		"title":       title,
		"description": "A test course",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	course := resp.Data["course"].(map[string]interface{})
	return uint(course["ID"].(float64))
}

func createChapter(t *testing.T, app *fiber.App, mentorToken string, courseID uint, seq int) uint {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/chapters", courseID), mentorToken, fiber.Map{
		"title":          fmt.Sprintf("Chapter %d", seq),
		"description":    "Chapter body",
		"sequence_order": seq,
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	chapter := resp.Data["chapter"].(map[string]interface{})
	return uint(chapter["ID"].(float64))
}

func assignStudent(t *testing.T, app *fiber.App, mentorToken string, courseID, studentID uint) {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/assign", courseID), mentorToken, fiber.Map{
		"studentIds": []uint{studentID},
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
}

func myCompletionPercentage(t *testing.T, app *fiber.App, studentToken string) int {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodGet, "/api/progress/my", studentToken, nil)
	require.Equal(t, http.StatusOK, status, resp.Message)

	progress := resp.Data["progress"].([]interface{})
	require.Len(t, progress, 1)
	entry := progress[0].(map[string]interface{})
	return int(entry["completionPercentage"].(float64))
}

func TestCourseCompletionFlow(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	studentID, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Intro to Go")
	var chapterIDs []uint
	for seq := 1; seq <= 3; seq++ {
		chapterIDs = append(chapterIDs, createChapter(t, app, mentorToken, courseID, seq))
	}
	assignStudent(t, app, mentorToken, courseID, studentID)

	expected := []int{33, 67, 100}
	for i, chapterID := range chapterIDs {
		status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", chapterID), studentToken, nil)
		require.Equal(t, http.StatusCreated, status, resp.Message)
		assert.Equal(t, "Chapter marked as completed successfully!", resp.Message)
		assert.Equal(t, expected[i], myCompletionPercentage(t, app, studentToken))
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/certificates/%d", courseID), nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "certificate-Intro-to-Go-")
	assert.Empty(t, resp.Header.Get("X-Certificate-Persisted"))

	document, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(document, []byte("%PDF")))

	// A second download reuses the stored record.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/certificates/%d", courseID), nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestCompleteChapterOutOfOrder(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	studentID, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Ordered Course")
	createChapter(t, app, mentorToken, courseID, 1)
	second := createChapter(t, app, mentorToken, courseID, 2)
	assignStudent(t, app, mentorToken, courseID, studentID)

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", second), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, resp.Message, "You must complete previous chapters first")
	assert.Contains(t, resp.Message, "sequence_order: 1")

	missing := resp.Data["missing_sequence_orders"].([]interface{})
	require.Len(t, missing, 1)
	assert.Equal(t, float64(1), missing[0])
}

func TestCompleteChapterNotAssigned(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	_, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Private Course")
	chapterID := createChapter(t, app, mentorToken, courseID, 1)

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", chapterID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not assigned to this course", resp.Message)
}

func TestCompleteChapterDuplicate(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	studentID, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Short Course")
	chapterID := createChapter(t, app, mentorToken, courseID, 1)
	assignStudent(t, app, mentorToken, courseID, studentID)

	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", chapterID), studentToken, nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", chapterID), studentToken, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Chapter is already completed", resp.Message)
}

func TestCertificateRequiresFullCompletion(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	studentID, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Half Done")
	first := createChapter(t, app, mentorToken, courseID, 1)
	createChapter(t, app, mentorToken, courseID, 2)
	assignStudent(t, app, mentorToken, courseID, studentID)

	status, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/progress/%d/complete", first), studentToken, nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/certificates/%d", courseID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, resp.Message, "Course completion is 50%")
	assert.Equal(t, float64(2), resp.Data["totalChapters"])
	assert.Equal(t, float64(1), resp.Data["completedChapters"])
}

func TestCertificateEmptyCourse(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	studentID, studentToken := register(t, app, "student@example.com")

	courseID := createCourse(t, app, mentorToken, "Empty Course")
	assignStudent(t, app, mentorToken, courseID, studentID)

	status, resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/certificates/%d", courseID), studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Course has no chapters. Certificate cannot be generated.", resp.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "dup@example.com")
	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "dup@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User with this email already exists!", resp.Message)
}

func TestUnapprovedMentorCannotLogin(t *testing.T) {
	app, db := newTestApp(t)

	id, _ := register(t, app, "pending@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"role": "mentor", "is_approved": false}).Error)

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "pending@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Mentor account is pending approval!", resp.Message)
}

func TestAdminApproveMentor(t *testing.T) {
	app, db := newTestApp(t)

	_, adminToken := registerWithRole(t, app, db, "admin@example.com", "admin")
	mentorID, _ := register(t, app, "newmentor@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", mentorID).
		Updates(map[string]interface{}{"role": "mentor", "is_approved": false}).Error)

	status, resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/approve-mentor", mentorID), adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mentor approved successfully!", resp.Message)

	// Approved mentor can now log in.
	login(t, app, "newmentor@example.com")

	status, resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/users/%d/approve-mentor", mentorID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Mentor is already approved!", resp.Message)
}

func TestDeletedUserEmailIsReusable(t *testing.T) {
	app, db := newTestApp(t)

	_, adminToken := registerWithRole(t, app, db, "admin@example.com", "admin")
	studentID, _ := register(t, app, "student@example.com")

	status, resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d", studentID), adminToken, nil)
	require.Equal(t, http.StatusOK, status, resp.Message)
	assert.Equal(t, "User deleted successfully!", resp.Message)

	// The delete is hard, so the unique email column is free again.
	newID, _ := register(t, app, "student@example.com")
	assert.NotEqual(t, studentID, newID)
}

func TestProtectedRoleDashboards(t *testing.T) {
	app, db := newTestApp(t)

	_, studentToken := register(t, app, "student@example.com")
	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")

	status, resp := doJSON(t, app, http.MethodGet, "/api/protected/profile", studentToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "student", resp.Data["role"])

	status, resp = doJSON(t, app, http.MethodGet, "/api/protected/student-dashboard", studentToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Student dashboard accessed successfully!", resp.Message)

	status, _ = doJSON(t, app, http.MethodGet, "/api/protected/mentor-dashboard", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = doJSON(t, app, http.MethodGet, "/api/protected/management", mentorToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Management panel accessed successfully!", resp.Message)

	status, _ = doJSON(t, app, http.MethodGet, "/api/protected/common", studentToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCourseRoutesRequireMentorRole(t *testing.T) {
	app, _ := newTestApp(t)

	_, studentToken := register(t, app, "student@example.com")
	status, resp := doJSON(t, app, http.MethodPost, "/api/courses", studentToken, fiber.Map{
		"title": "Not allowed",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You do not have permission to access this resource!", resp.Message)
}

func TestChapterSequenceConflict(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	courseID := createCourse(t, app, mentorToken, "Clashing Course")
	createChapter(t, app, mentorToken, courseID, 1)

	status, resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/chapters", courseID), mentorToken, fiber.Map{
		"title":          "Clash",
		"sequence_order": 1,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "A chapter with sequence_order 1 already exists for this course!", resp.Message)
}

func TestStudentCourseAccessDenied(t *testing.T) {
	app, db := newTestApp(t)

	_, mentorToken := registerWithRole(t, app, db, "mentor@example.com", "mentor")
	_, studentToken := register(t, app, "student@example.com")
	courseID := createCourse(t, app, mentorToken, "Restricted")

	status, resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/student/courses/%d", courseID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You do not have access to this course. Course is not assigned to you.", resp.Message)
}
