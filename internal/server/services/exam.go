package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/server/models"
	"github.com/dsantanna/quizdeck/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ExamService implements exam management and the once-per-user attempt.
type ExamService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewExamService(db *sql.DB, m repomanager.RepositoryManager) *ExamService {
	return &ExamService{db: db, repomanager: m}
}

func validateExam(title, subject string, questionIDs []string, durationMinutes int) error {
	if title == "" || subject == "" {
		return common.ErrorValidation
	}
	if len(questionIDs) == 0 {
		return common.ErrorValidation
	}
	if durationMinutes <= 0 {
		return common.ErrorValidation
	}
	return nil
}

func (s *ExamService) Create(ctx context.Context, title, subject string, questionIDs []string, durationMinutes int) (*models.Exam, error) {
	if err := validateExam(title, subject, questionIDs, durationMinutes); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		ID:              uuid.NewString(),
		Title:           title,
		Subject:         subject,
		QuestionIDs:     questionIDs,
		DurationMinutes: durationMinutes,
	}

	created, err := s.repomanager.Exams(s.db).Create(ctx, exam)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repomanager.Exams(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return exam, nil
}

func (s *ExamService) List(ctx context.Context) ([]*models.Exam, error) {
	result, err := s.repomanager.Exams(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *ExamService) Update(ctx context.Context, id, title, subject string, questionIDs []string, durationMinutes int) error {
	if err := validateExam(title, subject, questionIDs, durationMinutes); err != nil {
		return err
	}

	exam := &models.Exam{
		ID:              id,
		Title:           title,
		Subject:         subject,
		QuestionIDs:     questionIDs,
		DurationMinutes: durationMinutes,
	}

	err := s.repomanager.Exams(s.db).Update(ctx, exam)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	return nil
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	err := s.repomanager.Exams(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}
	return nil
}

// StartExam records that the user began the exam. A user may start a given
// exam at most once; a repeat start fails with ErrorAlreadyExists.
func (s *ExamService) StartExam(ctx context.Context, userID, examID string) (*models.ExamAttempt, error) {
	if _, err := s.repomanager.Exams(s.db).GetByID(ctx, examID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Attempts(s.db)

	_, err := repo.GetByUserAndExam(ctx, userID, examID)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	attempt := &models.ExamAttempt{
		ID:     uuid.NewString(),
		UserID: userID,
		ExamID: examID,
	}

	// The unique constraint backs up the pre-check under concurrency.
	created, err := repo.Create(ctx, attempt)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return created, nil
}
