package httpapi

import "net/http"

type questionRequest struct {
	Subject       string   `json:"subject"`
	Statement     string   `json:"statement"`
	Alternatives  []string `json:"alternatives"`
	CorrectAnswer int      `json:"correct_answer"`
}

// handleListQuestions serves the full catalog, or only the questions the
// session user has not answered yet when ?unanswered=1 is given.
func (s *HTTPServer) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("unanswered") == "1" {
		questions, err := s.questions.ListUnanswered(r.Context(), currentUser(r).ID)
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, questions)
		return
	}

	questions, err := s.questions.List(r.Context())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, questions)
}

func (s *HTTPServer) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	question, err := s.questions.Create(r.Context(), req.Subject, req.Statement, req.Alternatives, req.CorrectAnswer)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, question)
}

func (s *HTTPServer) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := s.questions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, question)
}

func (s *HTTPServer) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.questions.Update(r.Context(), r.PathValue("id"), req.Subject, req.Statement, req.Alternatives, req.CorrectAnswer); err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *HTTPServer) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.questions.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
