package users

import (
	"context"

	"github.com/dsantanna/quizdeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// SetSessionToken overwrites the user's single session slot and stamps
	// last_login. Any previously issued token becomes invalid.
	SetSessionToken(ctx context.Context, id string, token string) error

	// ClearSessionToken empties the session slot (logout).
	ClearSessionToken(ctx context.Context, id string) error
}
