package models

import "time"

// Question is a multiple-choice question. Alternatives is stored as a JSON
// array in a single column; CorrectAnswer is the index into Alternatives.
type Question struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Statement     string    `json:"statement"`
	Alternatives  []string  `json:"alternatives"`
	CorrectAnswer int       `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}
