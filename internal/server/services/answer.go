package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/dbx"
	"github.com/dsantanna/quizdeck/internal/server/models"
	"github.com/dsantanna/quizdeck/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AnswerService records user answers and serves the flashcard review and
// stats views. Correctness is decided here, not by the client: an answer
// is correct when the given index equals the question's stored one.
type AnswerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnswerService(db *sql.DB, m repomanager.RepositoryManager) *AnswerService {
	return &AnswerService{db: db, repomanager: m}
}

// Submit stores the user's answer to a question. Each question may be
// answered once per user; a second submission fails with ErrorAlreadyExists.
func (s *AnswerService) Submit(ctx context.Context, userID, questionID string, givenAnswer int) (*models.Answer, error) {
	question, err := s.repomanager.Questions(s.db).GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	if givenAnswer < 0 || givenAnswer >= len(question.Alternatives) {
		return nil, common.ErrorValidation
	}

	var created *models.Answer

	// Pre-check and insert share one transaction. The unique constraint
	// backs up the pre-check under concurrency.
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Answers(tx)

		answered, err := repo.HasAnswered(ctx, userID, questionID)
		if err != nil {
			return common.ErrorInternal
		}
		if answered {
			return common.ErrorAlreadyExists
		}

		answer := &models.Answer{
			ID:          uuid.NewString(),
			UserID:      userID,
			QuestionID:  questionID,
			GivenAnswer: givenAnswer,
			IsCorrect:   givenAnswer == question.CorrectAnswer,
		}

		created, err = repo.Create(ctx, answer)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return common.ErrorInternal
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}

	return created, nil
}

// ListByUser returns the user's answers joined with question data for
// flashcard review, newest first.
func (s *AnswerService) ListByUser(ctx context.Context, userID string) ([]*models.AnsweredQuestion, error) {
	result, err := s.repomanager.Answers(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Stats returns the user's answering aggregate.
func (s *AnswerService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats, err := s.repomanager.Answers(s.db).Stats(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return stats, nil
}
