package exams

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

func (r *PostgresRepository) Create(ctx context.Context, exam *models.Exam) (*models.Exam, error) {

	questionIDs, err := json.Marshal(exam.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("question ids encode error: %w", err)
	}

	query :=
		`INSERT INTO exams (id, title, subject, question_ids, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		exam.ID, exam.Title, exam.Subject, questionIDs, exam.DurationMinutes).
		Scan(&exam.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return exam, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Exam, error) {
	query :=
		`SELECT id, title, subject, question_ids, duration_minutes, created_at
		 FROM exams
		 WHERE id = $1
		 `

	exam, err := scanExam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return exam, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Exam, error) {
	query :=
		`SELECT id, title, subject, question_ids, duration_minutes, created_at
		 FROM exams
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, exam *models.Exam) error {

	questionIDs, err := json.Marshal(exam.QuestionIDs)
	if err != nil {
		return fmt.Errorf("question ids encode error: %w", err)
	}

	query :=
		`UPDATE exams SET title = $1, subject = $2, question_ids = $3, duration_minutes = $4
		 WHERE id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		exam.Title, exam.Subject, questionIDs, exam.DurationMinutes, exam.ID)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
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

func scanExam(row rowScanner) (*models.Exam, error) {
	exam := &models.Exam{}
	var questionIDs []byte

	err := row.Scan(&exam.ID, &exam.Title, &exam.Subject,
		&questionIDs, &exam.DurationMinutes, &exam.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionIDs, &exam.QuestionIDs); err != nil {
		return nil, fmt.Errorf("question ids decode error: %w", err)
	}

	return exam, nil
}
