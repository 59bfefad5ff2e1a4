package questions

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {

	alternatives, err := json.Marshal(question.Alternatives)
	if err != nil {
		return nil, fmt.Errorf("alternatives encode error: %w", err)
	}

	query :=
		`INSERT INTO questions (id, subject, statement, alternatives, correct_answer)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		question.ID, question.Subject, question.Statement, alternatives, question.CorrectAnswer).
		Scan(&question.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return question, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query :=
		`SELECT id, subject, statement, alternatives, correct_answer, created_at
		 FROM questions
		 WHERE id = $1
		 `

	question, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return question, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Question, error) {
	query :=
		`SELECT id, subject, statement, alternatives, correct_answer, created_at
		 FROM questions
		 ORDER BY created_at DESC
		 `

	return r.queryMany(ctx, query)
}

func (r *PostgresRepository) ListUnanswered(ctx context.Context, userID string) ([]*models.Question, error) {
	query :=
		`SELECT id, subject, statement, alternatives, correct_answer, created_at
		 FROM questions
		 WHERE id NOT IN (SELECT question_id FROM answers WHERE user_id = $1)
		 ORDER BY created_at DESC
		 `

	return r.queryMany(ctx, query, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, question *models.Question) error {

	alternatives, err := json.Marshal(question.Alternatives)
	if err != nil {
		return fmt.Errorf("alternatives encode error: %w", err)
	}

	query :=
		`UPDATE questions SET subject = $1, statement = $2, alternatives = $3, correct_answer = $4
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		question.Subject, question.Statement, alternatives, question.CorrectAnswer, question.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	question := &models.Question{}
	var alternatives []byte

	err := row.Scan(&question.ID, &question.Subject, &question.Statement,
		&alternatives, &question.CorrectAnswer, &question.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(alternatives, &question.Alternatives); err != nil {
		return nil, fmt.Errorf("alternatives decode error: %w", err)
	}

	return question, nil
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
