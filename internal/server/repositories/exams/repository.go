package exams

import (
	"context"

	"github.com/dsantanna/quizdeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, exam *models.Exam) (*models.Exam, error)
	GetByID(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context) ([]*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id string) error
}
