package attempts

import (
	"context"

	"github.com/dsantanna/quizdeck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamAttempt, error)

	// GetByUserAndExam returns the user's attempt on the exam, or
	// common.ErrorNotFound when none exists.
	GetByUserAndExam(ctx context.Context, userID, examID string) (*models.ExamAttempt, error)
}
