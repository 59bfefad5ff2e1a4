package httpapi

import "net/http"

type examRequest struct {
	Title           string   `json:"title"`
	Subject         string   `json:"subject"`
	QuestionIDs     []string `json:"question_ids"`
	DurationMinutes int      `json:"duration_minutes"`
}

func (s *HTTPServer) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := s.exams.List(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, exams)
}

func (s *HTTPServer) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	exam, err := s.exams.Create(r.Context(), req.Title, req.Subject, req.QuestionIDs, req.DurationMinutes)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, exam)
}

func (s *HTTPServer) handleGetExam(w http.ResponseWriter, r *http.Request) {
	exam, err := s.exams.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, exam)
}

func (s *HTTPServer) handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	var req examRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.exams.Update(r.Context(), r.PathValue("id"), req.Title, req.Subject, req.QuestionIDs, req.DurationMinutes); err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *HTTPServer) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	if err := s.exams.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleStartExam opens the session user's single attempt at an exam.
func (s *HTTPServer) handleStartExam(w http.ResponseWriter, r *http.Request) {
	attempt, err := s.exams.StartExam(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, attempt)
}
