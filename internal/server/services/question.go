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

// minAlternatives is the smallest alternatives list a question may carry.
const minAlternatives = 4

// QuestionService implements question management: admin CRUD plus the
// per-user unanswered listing.
type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager) *QuestionService {
	return &QuestionService{db: db, repomanager: m}
}

func validateQuestion(subject, statement string, alternatives []string, correctAnswer int) error {
	if subject == "" || statement == "" {
		return common.ErrorValidation
	}
	if len(alternatives) < minAlternatives {
		return common.ErrorValidation
	}
	if correctAnswer < 0 || correctAnswer >= len(alternatives) {
		return common.ErrorValidation
	}
	return nil
}

func (s *QuestionService) Create(ctx context.Context, subject, statement string, alternatives []string, correctAnswer int) (*models.Question, error) {
	if err := validateQuestion(subject, statement, alternatives, correctAnswer); err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:            uuid.NewString(),
		Subject:       subject,
		Statement:     statement,
		Alternatives:  alternatives,
		CorrectAnswer: correctAnswer,
	}

	created, err := s.repomanager.Questions(s.db).Create(ctx, question)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	question, err := s.repomanager.Questions(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return question, nil
}

func (s *QuestionService) List(ctx context.Context) ([]*models.Question, error) {
	result, err := s.repomanager.Questions(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// ListUnanswered returns the questions the user has not answered yet.
func (s *QuestionService) ListUnanswered(ctx context.Context, userID string) ([]*models.Question, error) {
	result, err := s.repomanager.Questions(s.db).ListUnanswered(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *QuestionService) Update(ctx context.Context, id, subject, statement string, alternatives []string, correctAnswer int) error {
	if err := validateQuestion(subject, statement, alternatives, correctAnswer); err != nil {
		return err
	}

	question := &models.Question{
		ID:            id,
		Subject:       subject,
		Statement:     statement,
		Alternatives:  alternatives,
		CorrectAnswer: correctAnswer,
	}

	err := s.repomanager.Questions(s.db).Update(ctx, question)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	return nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	err := s.repomanager.Questions(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}
	return nil
}
