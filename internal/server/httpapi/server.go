// Package httpapi exposes the QuizDeck services over HTTP/JSON. The
// session travels in an http-only cookie; every protected route goes
// through the session middleware before its handler runs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dsantanna/quizdeck/internal/logging"
	"github.com/dsantanna/quizdeck/internal/server/auth"
	"github.com/dsantanna/quizdeck/internal/server/models"
)

// UserService is the slice of the users service the HTTP layer needs.
type UserService interface {
	Login(ctx context.Context, email, password string) (*models.Sanitized, string, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*models.Sanitized, error)
	Create(ctx context.Context, name, email, password, role string) (*models.Sanitized, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id, name, email, role string, isActive bool) error
	Delete(ctx context.Context, id string) error
}

type QuestionService interface {
	Create(ctx context.Context, subject, statement string, alternatives []string, correctAnswer int) (*models.Question, error)
	Get(ctx context.Context, id string) (*models.Question, error)
	List(ctx context.Context) ([]*models.Question, error)
	ListUnanswered(ctx context.Context, userID string) ([]*models.Question, error)
	Update(ctx context.Context, id, subject, statement string, alternatives []string, correctAnswer int) error
	Delete(ctx context.Context, id string) error
}

type AnswerService interface {
	Submit(ctx context.Context, userID, questionID string, givenAnswer int) (*models.Answer, error)
	ListByUser(ctx context.Context, userID string) ([]*models.AnsweredQuestion, error)
	Stats(ctx context.Context, userID string) (*models.UserStats, error)
}

type ExamService interface {
	Create(ctx context.Context, title, subject string, questionIDs []string, durationMinutes int) (*models.Exam, error)
	Get(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context) ([]*models.Exam, error)
	Update(ctx context.Context, id, title, subject string, questionIDs []string, durationMinutes int) error
	Delete(ctx context.Context, id string) error
	StartExam(ctx context.Context, userID, examID string) (*models.ExamAttempt, error)
}

type HTTPServer struct {
	address         string
	logger          logging.Logger
	users           UserService
	questions       QuestionService
	answers         AnswerService
	exams           ExamService
	secureCookies   bool
	sessionValidity time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us UserService, qs QuestionService, as AnswerService, es ExamService, secureCookies bool, sessionValidity time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		questions:       qs,
		answers:         as,
		exams:           es,
		secureCookies:   secureCookies,
		sessionValidity: sessionValidity,
	}
}

// Handler assembles the route table.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.protected(auth.RoleAny, s.handleMe))

	mux.HandleFunc("GET /api/users", s.protected(auth.RoleAdmin, s.handleListUsers))
	mux.HandleFunc("POST /api/users", s.protected(auth.RoleAdmin, s.handleCreateUser))
	mux.HandleFunc("PUT /api/users/{id}", s.protected(auth.RoleAdmin, s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", s.protected(auth.RoleAdmin, s.handleDeleteUser))
	mux.HandleFunc("GET /api/users/me/stats", s.protected(auth.RoleAny, s.handleMyStats))

	mux.HandleFunc("GET /api/questions", s.protected(auth.RoleAny, s.handleListQuestions))
	mux.HandleFunc("POST /api/questions", s.protected(auth.RoleAdmin, s.handleCreateQuestion))
	mux.HandleFunc("GET /api/questions/{id}", s.protected(auth.RoleAny, s.handleGetQuestion))
	mux.HandleFunc("PUT /api/questions/{id}", s.protected(auth.RoleAdmin, s.handleUpdateQuestion))
	mux.HandleFunc("DELETE /api/questions/{id}", s.protected(auth.RoleAdmin, s.handleDeleteQuestion))

	mux.HandleFunc("GET /api/answers", s.protected(auth.RoleAny, s.handleListAnswers))
	mux.HandleFunc("POST /api/answers", s.protected(auth.RoleAny, s.handleSubmitAnswer))

	mux.HandleFunc("GET /api/exams", s.protected(auth.RoleAny, s.handleListExams))
	mux.HandleFunc("POST /api/exams", s.protected(auth.RoleAdmin, s.handleCreateExam))
	mux.HandleFunc("GET /api/exams/{id}", s.protected(auth.RoleAny, s.handleGetExam))
	mux.HandleFunc("PUT /api/exams/{id}", s.protected(auth.RoleAdmin, s.handleUpdateExam))
	mux.HandleFunc("DELETE /api/exams/{id}", s.protected(auth.RoleAdmin, s.handleDeleteExam))
	mux.HandleFunc("POST /api/exams/{id}/start", s.protected(auth.RoleAny, s.handleStartExam))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
