package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/dbx"
	"github.com/dsantanna/quizdeck/internal/server/models"
	answersrepo "github.com/dsantanna/quizdeck/internal/server/repositories/answers"
	attemptsrepo "github.com/dsantanna/quizdeck/internal/server/repositories/attempts"
	examsrepo "github.com/dsantanna/quizdeck/internal/server/repositories/exams"
	questionsrepo "github.com/dsantanna/quizdeck/internal/server/repositories/questions"
	usersrepo "github.com/dsantanna/quizdeck/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _ := newSQLMockDBWithMock(t)
	return db
}

// newSQLMockDBWithMock also hands back the mock, for services that open
// transactions on the handle.
func newSQLMockDBWithMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeUsersRepo keeps user records in memory so session-slot mutation is
// observable across calls.
type fakeUsersRepo struct {
	byID map[string]*models.User

	failWith error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: make(map[string]*models.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var result []*models.User
	for _, u := range f.byID {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.byID)), nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	existing, ok := f.byID[u.ID]
	if !ok {
		return common.ErrorNotFound
	}
	existing.Name, existing.Email, existing.Role, existing.IsActive = u.Name, u.Email, u.Role, u.IsActive
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsersRepo) SetSessionToken(ctx context.Context, id string, token string) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.SessionToken = token
	return nil
}

func (f *fakeUsersRepo) ClearSessionToken(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.SessionToken = ""
	return nil
}

// fakeQuestionsRepo serves canned questions.
type fakeQuestionsRepo struct {
	byID map[string]*models.Question

	listErr error
}

func newFakeQuestionsRepo(questions ...*models.Question) *fakeQuestionsRepo {
	f := &fakeQuestionsRepo{byID: make(map[string]*models.Question)}
	for _, q := range questions {
		f.byID[q.ID] = q
	}
	return f
}

func (f *fakeQuestionsRepo) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	f.byID[q.ID] = q
	return q, nil
}

func (f *fakeQuestionsRepo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return q, nil
}

func (f *fakeQuestionsRepo) List(ctx context.Context) ([]*models.Question, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Question
	for _, q := range f.byID {
		result = append(result, q)
	}
	return result, nil
}

func (f *fakeQuestionsRepo) ListUnanswered(ctx context.Context, userID string) ([]*models.Question, error) {
	return f.List(ctx)
}

func (f *fakeQuestionsRepo) Update(ctx context.Context, q *models.Question) error {
	if _, ok := f.byID[q.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[q.ID] = q
	return nil
}

func (f *fakeQuestionsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeAnswersRepo keys answers by user+question to emulate the unique
// constraint.
type fakeAnswersRepo struct {
	answers map[string]*models.Answer

	stats *models.UserStats
}

func newFakeAnswersRepo() *fakeAnswersRepo {
	return &fakeAnswersRepo{answers: make(map[string]*models.Answer)}
}

func (f *fakeAnswersRepo) key(userID, questionID string) string { return userID + "/" + questionID }

func (f *fakeAnswersRepo) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	k := f.key(a.UserID, a.QuestionID)
	if _, ok := f.answers[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.answers[k] = a
	return a, nil
}

func (f *fakeAnswersRepo) ListByUser(ctx context.Context, userID string) ([]*models.AnsweredQuestion, error) {
	var result []*models.AnsweredQuestion
	for _, a := range f.answers {
		if a.UserID == userID {
			result = append(result, &models.AnsweredQuestion{Answer: *a})
		}
	}
	return result, nil
}

func (f *fakeAnswersRepo) HasAnswered(ctx context.Context, userID, questionID string) (bool, error) {
	_, ok := f.answers[f.key(userID, questionID)]
	return ok, nil
}

func (f *fakeAnswersRepo) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &models.UserStats{}, nil
}

// fakeExamsRepo and fakeAttemptsRepo back the exam service tests.
type fakeExamsRepo struct {
	byID map[string]*models.Exam
}

func newFakeExamsRepo(exams ...*models.Exam) *fakeExamsRepo {
	f := &fakeExamsRepo{byID: make(map[string]*models.Exam)}
	for _, e := range exams {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeExamsRepo) Create(ctx context.Context, e *models.Exam) (*models.Exam, error) {
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeExamsRepo) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeExamsRepo) List(ctx context.Context) ([]*models.Exam, error) {
	var result []*models.Exam
	for _, e := range f.byID {
		result = append(result, e)
	}
	return result, nil
}

func (f *fakeExamsRepo) Update(ctx context.Context, e *models.Exam) error {
	if _, ok := f.byID[e.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeExamsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAttemptsRepo struct {
	attempts map[string]*models.ExamAttempt

	createErr error
}

func newFakeAttemptsRepo() *fakeAttemptsRepo {
	return &fakeAttemptsRepo{attempts: make(map[string]*models.ExamAttempt)}
}

func (f *fakeAttemptsRepo) key(userID, examID string) string { return userID + "/" + examID }

func (f *fakeAttemptsRepo) Create(ctx context.Context, a *models.ExamAttempt) (*models.ExamAttempt, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	k := f.key(a.UserID, a.ExamID)
	if _, ok := f.attempts[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.attempts[k] = a
	return a, nil
}

func (f *fakeAttemptsRepo) GetByUserAndExam(ctx context.Context, userID, examID string) (*models.ExamAttempt, error) {
	a, ok := f.attempts[f.key(userID, examID)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

// fakeRepoManager wires the fakes into the RepositoryManager shape.
type fakeRepoManager struct {
	u *fakeUsersRepo
	q *fakeQuestionsRepo
	a *fakeAnswersRepo
	e *fakeExamsRepo
	t *fakeAttemptsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Questions(db dbx.DBTX) questionsrepo.Repository   { return m.q }
func (m *fakeRepoManager) Answers(db dbx.DBTX) answersrepo.Repository       { return m.a }
func (m *fakeRepoManager) Exams(db dbx.DBTX) examsrepo.Repository           { return m.e }
func (m *fakeRepoManager) Attempts(db dbx.DBTX) attemptsrepo.Repository     { return m.t }
