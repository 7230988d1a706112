package certification

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
	courseModels "lms/models/course"
	"lms/services/domain"
	"lms/services/progression"
)

type fakeStore struct {
	course    *courseModels.Course
	student   *models.User
	cert      *courseModels.Certificate
	insertErr error

	// hideCertOnce makes the first FindCertificate miss, simulating a
	// concurrent issuance landing between the lookup and the insert.
	hideCertOnce bool
}

func (f *fakeStore) FindCourse(id uint) (*courseModels.Course, error) {
	if f.course == nil || f.course.ID != id {
		return nil, nil
	}
	return f.course, nil
}

func (f *fakeStore) FindUser(id uint) (*models.User, error) {
	if f.student == nil || f.student.ID != id {
		return nil, nil
	}
	return f.student, nil
}

func (f *fakeStore) FindCertificate(studentID, courseID uint) (*courseModels.Certificate, error) {
	if f.hideCertOnce {
		f.hideCertOnce = false
		return nil, nil
	}
	if f.cert == nil || f.cert.StudentID != studentID || f.cert.CourseID != courseID {
		return nil, nil
	}
	return f.cert, nil
}

func (f *fakeStore) InsertCertificate(cert *courseModels.Certificate) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.cert != nil {
		return domain.ErrDuplicate
	}
	f.cert = cert
	return nil
}

type progressStub struct {
	assigned bool
	snapshot progression.CourseProgress
}

func (p *progressStub) IsAssigned(studentID, courseID uint) (bool, error) {
	return p.assigned, nil
}

func (p *progressStub) CourseProgress(studentID, courseID uint) (progression.CourseProgress, error) {
	return p.snapshot, nil
}

// recordingRenderer captures the labels handed to it.
type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) Render(studentLabel, courseTitle, dateLabel string) ([]byte, error) {
	r.calls = append(r.calls, studentLabel+"|"+courseTitle+"|"+dateLabel)
	return []byte("%PDF-stub"), nil
}

func testFixture(snapshot progression.CourseProgress) (*fakeStore, *progressStub, *recordingRenderer, *Engine) {
	courseRow := &courseModels.Course{Title: "Intro to Go", MentorID: 2}
	courseRow.ID = 10
	student := &models.User{Email: "student@example.com", Role: "student"}
	student.ID = 7

	store := &fakeStore{course: courseRow, student: student}
	progress := &progressStub{assigned: true, snapshot: snapshot}
	renderer := &recordingRenderer{}
	return store, progress, renderer, NewEngine(store, progress, renderer)
}

func requireKind(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, kind, derr.Kind)
	return derr
}

func TestGetOrIssueFirstIssuance(t *testing.T) {
	store, _, renderer, engine := testFixture(progression.CourseProgress{TotalChapters: 2, CompletedChapters: 2, CompletionPercentage: 100})

	result, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.True(t, result.Persisted)
	assert.NotEmpty(t, result.SerialNumber)
	assert.Equal(t, []byte("%PDF-stub"), result.Document)
	assert.Equal(t, "student@example.com", result.StudentEmail)
	assert.Equal(t, "Intro to Go", result.CourseTitle)

	require.NotNil(t, store.cert)
	assert.Equal(t, store.cert.IssuedAt, result.IssuedAt)
	require.Len(t, renderer.calls, 1)
	assert.Contains(t, renderer.calls[0], "student@example.com|Intro to Go|")
}

func TestGetOrIssueIdempotent(t *testing.T) {
	// Two sequential requests render the same issuance date: the stored
	// row is authoritative, never re-stamped.
	_, _, renderer, engine := testFixture(progression.CourseProgress{TotalChapters: 2, CompletedChapters: 2, CompletionPercentage: 100})

	first, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)
	second, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.IssuedAt, second.IssuedAt)
	assert.Equal(t, first.SerialNumber, second.SerialNumber)
	require.Len(t, renderer.calls, 2)
	assert.Equal(t, renderer.calls[0], renderer.calls[1])
}

func TestGetOrIssueReusesStoredDate(t *testing.T) {
	store, _, renderer, engine := testFixture(progression.CourseProgress{TotalChapters: 2, CompletedChapters: 2, CompletionPercentage: 100})

	issued := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
	store.cert = &courseModels.Certificate{StudentID: 7, CourseID: 10, SerialNumber: "serial-1", IssuedAt: issued}

	result, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.True(t, result.Persisted)
	assert.Equal(t, issued, result.IssuedAt)
	assert.Equal(t, "serial-1", result.SerialNumber)
	require.Len(t, renderer.calls, 1)
	assert.Contains(t, renderer.calls[0], "March 9, 2024")
}

func TestGetOrIssueIncomplete(t *testing.T) {
	snapshot := progression.CourseProgress{TotalChapters: 3, CompletedChapters: 2, CompletionPercentage: 67}
	store, _, renderer, engine := testFixture(snapshot)

	_, err := engine.GetOrIssue(7, 10)
	derr := requireKind(t, err, domain.KindForbidden)
	assert.Contains(t, derr.Message, "Course completion is 67%")
	assert.Equal(t, snapshot, derr.Data)

	// No document and no record at anything under 100%.
	assert.Empty(t, renderer.calls)
	assert.Nil(t, store.cert)
}

func TestGetOrIssueNoChapters(t *testing.T) {
	_, _, renderer, engine := testFixture(progression.CourseProgress{})

	_, err := engine.GetOrIssue(7, 10)
	derr := requireKind(t, err, domain.KindValidation)
	assert.Contains(t, derr.Message, "no chapters")
	assert.Empty(t, renderer.calls)
}

func TestGetOrIssueNotAssigned(t *testing.T) {
	_, progress, _, engine := testFixture(progression.CourseProgress{TotalChapters: 1, CompletedChapters: 1, CompletionPercentage: 100})
	progress.assigned = false

	_, err := engine.GetOrIssue(7, 10)
	derr := requireKind(t, err, domain.KindForbidden)
	assert.Equal(t, "You are not assigned to this course", derr.Message)
}

func TestGetOrIssueCourseMissing(t *testing.T) {
	store, _, _, engine := testFixture(progression.CourseProgress{TotalChapters: 1, CompletedChapters: 1, CompletionPercentage: 100})
	store.course = nil

	_, err := engine.GetOrIssue(7, 10)
	requireKind(t, err, domain.KindNotFound)
}

func TestGetOrIssueDegradedOnInsertFailure(t *testing.T) {
	// A failed record insert does not block issuance: the document is
	// produced anyway, dated now, and flagged as not persisted.
	store, _, _, engine := testFixture(progression.CourseProgress{TotalChapters: 1, CompletedChapters: 1, CompletionPercentage: 100})
	store.insertErr = errors.New("connection reset")

	result, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.False(t, result.Created)
	assert.NotEmpty(t, result.Document)
	assert.WithinDuration(t, time.Now().UTC(), result.IssuedAt, time.Minute)
}

func TestGetOrIssueLostInsertRace(t *testing.T) {
	// Duplicate-key on insert means a concurrent request won; the winner's
	// stored record is reused instead of issuing a degraded document.
	store, _, _, engine := testFixture(progression.CourseProgress{TotalChapters: 1, CompletedChapters: 1, CompletionPercentage: 100})

	issued := time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC)
	store.cert = &courseModels.Certificate{StudentID: 7, CourseID: 10, SerialNumber: "winner", IssuedAt: issued}
	store.insertErr = domain.ErrDuplicate
	store.hideCertOnce = true

	result, err := engine.GetOrIssue(7, 10)
	require.NoError(t, err)
	assert.True(t, result.Persisted)
	assert.False(t, result.Created)
	assert.Equal(t, issued, result.IssuedAt)
	assert.Equal(t, "winner", result.SerialNumber)
}
