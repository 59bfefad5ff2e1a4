package httpapi

import (
	"context"
	"net/http"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/server/auth"
	"github.com/dsantanna/quizdeck/internal/server/models"
)

type contextKey string

const userContextKey contextKey = "current_user"

// protected wraps a handler with session extraction and the role gate.
// No cookie or a failing validation yields 401, a valid session without
// the required role yields 403. On success the sanitized user is placed
// on the request context.
func (s *HTTPServer) protected(required auth.RequiredRole, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(common.SessionCookieName)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := s.users.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		if !auth.Authorize(user, required) {
			s.serviceError(w, common.ErrForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// currentUser returns the session user stored by the middleware.
func currentUser(r *http.Request) *models.Sanitized {
	user, _ := r.Context().Value(userContextKey).(*models.Sanitized)
	return user
}
