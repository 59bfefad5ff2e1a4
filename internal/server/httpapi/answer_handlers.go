package httpapi

import "net/http"

type submitAnswerRequest struct {
	QuestionID  string `json:"question_id"`
	GivenAnswer int    `json:"given_answer"`
}

// handleListAnswers returns the session user's own answers joined with
// question data, for flashcard review.
func (s *HTTPServer) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.answers.ListByUser(r.Context(), currentUser(r).ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, answers)
}

func (s *HTTPServer) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	answer, err := s.answers.Submit(r.Context(), currentUser(r).ID, req.QuestionID, req.GivenAnswer)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, answer)
}
