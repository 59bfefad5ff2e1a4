package httpapi

import (
	"net/http"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *models.Sanitized `json:"user"`
	SessionToken string            `json:"sessionToken"`
}

// handleLogin sets the session cookie and echoes the token in the body,
// so non-browser clients can pick it up without parsing Set-Cookie.
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.setSessionCookie(w, token)
	s.writeJSON(w, http.StatusOK, loginResponse{User: user, SessionToken: token})
}

// handleLogout clears the server-side token slot and expires the cookie.
// It is deliberately unauthenticated: a stale or garbage cookie still
// gets cleared on the client.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(common.SessionCookieName); err == nil {
		if err := s.users.Logout(r.Context(), cookie.Value); err != nil {
			s.serviceError(w, err)
			return
		}
	}

	s.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, currentUser(r))
}
