package answers

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, answer *models.Answer) (*models.Answer, error) {

	query :=
		`INSERT INTO answers (id, user_id, question_id, given_answer, is_correct)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING answered_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		answer.ID, answer.UserID, answer.QuestionID, answer.GivenAnswer, answer.IsCorrect).
		Scan(&answer.AnsweredAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return answer, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.AnsweredQuestion, error) {
	query :=
		`SELECT a.id, a.user_id, a.question_id, a.given_answer, a.is_correct, a.answered_at,
		        q.subject, q.statement, q.alternatives, q.correct_answer
		 FROM answers a
		 JOIN questions q ON a.question_id = q.id
		 WHERE a.user_id = $1
		 ORDER BY a.answered_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AnsweredQuestion
	for rows.Next() {
		item := &models.AnsweredQuestion{}
		var alternatives []byte

		err := rows.Scan(&item.ID, &item.UserID, &item.QuestionID, &item.GivenAnswer,
			&item.IsCorrect, &item.AnsweredAt,
			&item.Subject, &item.Statement, &alternatives, &item.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if err := json.Unmarshal(alternatives, &item.Alternatives); err != nil {
			return nil, fmt.Errorf("alternatives decode error: %w", err)
		}

		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) HasAnswered(ctx context.Context, userID, questionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM answers WHERE user_id = $1 AND question_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, questionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	query :=
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0),
		        MAX(answered_at)
		 FROM answers
		 WHERE user_id = $1
		 `

	stats := &models.UserStats{}
	var lastAnswer sql.NullTime

	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&stats.TotalAnswered, &stats.CorrectAnswers, &lastAnswer)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lastAnswer.Valid {
		stats.LastAnswerDate = &lastAnswer.Time
	}
	if stats.TotalAnswered > 0 {
		stats.AccuracyRate = float64(stats.CorrectAnswers) / float64(stats.TotalAnswered) * 100
	}

	return stats, nil
}
