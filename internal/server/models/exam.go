package models

import "time"

// Exam groups an ordered list of question ids under a title and a time
// limit. QuestionIDs is stored as a JSON array in a single column.
type Exam struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	QuestionIDs     []string  `json:"question_ids"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExamAttempt records that a user started an exam. A user may start a
// given exam at most once.
type ExamAttempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExamID    string    `json:"exam_id"`
	StartedAt time.Time `json:"started_at"`
}
