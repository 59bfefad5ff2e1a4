package attempts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/dbx"
	"github.com/dsantanna/quizdeck/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamAttempt, error) {

	query :=
		`INSERT INTO exam_attempts (id, user_id, exam_id)
		 VALUES ($1, $2, $3)
		 RETURNING started_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		attempt.ID, attempt.UserID, attempt.ExamID).
		Scan(&attempt.StartedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attempt, nil
}

func (r *PostgresRepository) GetByUserAndExam(ctx context.Context, userID, examID string) (*models.ExamAttempt, error) {
	query :=
		`SELECT id, user_id, exam_id, started_at
		 FROM exam_attempts
		 WHERE user_id = $1 AND exam_id = $2
		 `

	attempt := &models.ExamAttempt{}
	err := r.db.QueryRowContext(ctx, query, userID, examID).
		Scan(&attempt.ID, &attempt.UserID, &attempt.ExamID, &attempt.StartedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attempt, nil
}
