package questions

import (
	"context"

	"github.com/dsantanna/quizdeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context) ([]*models.Question, error)

	// ListUnanswered returns questions the given user has not answered yet.
	ListUnanswered(ctx context.Context, userID string) ([]*models.Question, error)

	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id string) error
}
