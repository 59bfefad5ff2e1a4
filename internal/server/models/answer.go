package models

import "time"

// Answer records one user's answer to one question. IsCorrect is computed
// server-side when the answer is submitted.
type Answer struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QuestionID  string    `json:"question_id"`
	GivenAnswer int       `json:"given_answer"`
	IsCorrect   bool      `json:"is_correct"`
	AnsweredAt  time.Time `json:"answered_at"`
}

// AnsweredQuestion is an answer joined with its question, used for
// flashcard review.
type AnsweredQuestion struct {
	Answer
	Subject       string   `json:"subject"`
	Statement     string   `json:"statement"`
	Alternatives  []string `json:"alternatives"`
	CorrectAnswer int      `json:"correct_answer"`
}

// UserStats is the per-user answering aggregate.
type UserStats struct {
	TotalAnswered  int64      `json:"total_answered"`
	CorrectAnswers int64      `json:"correct_answers"`
	AccuracyRate   float64    `json:"accuracy_rate"`
	LastAnswerDate *time.Time `json:"last_answer_date,omitempty"`
}
