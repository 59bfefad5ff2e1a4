package answers

import (
	"context"

	"github.com/dsantanna/quizdeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, answer *models.Answer) (*models.Answer, error)

	// ListByUser returns the user's answers joined with their questions,
	// newest first, for flashcard review.
	ListByUser(ctx context.Context, userID string) ([]*models.AnsweredQuestion, error)

	// HasAnswered reports whether the user already answered the question.
	HasAnswered(ctx context.Context, userID, questionID string) (bool, error)

	// Stats aggregates the user's answering history.
	Stats(ctx context.Context, userID string) (*models.UserStats, error)
}
