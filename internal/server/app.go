// Package server initializes and runs the QuizDeck application server.
// It opens the database, applies migrations, seeds the bootstrap admin
// and starts the HTTP server, shutting everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dsantanna/quizdeck/internal/logging"
	"github.com/dsantanna/quizdeck/internal/server/config"
	"github.com/dsantanna/quizdeck/internal/server/httpapi"
	"github.com/dsantanna/quizdeck/internal/server/repositories/repomanager"
	"github.com/dsantanna/quizdeck/internal/server/services"
	"github.com/dsantanna/quizdeck/internal/server/shared/db"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	userService     *services.UserService
	questionService *services.QuestionService
	answerService   *services.AnswerService
	examService     *services.ExamService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	if err := m.RunMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(conn, m, cfg)
	qs := services.NewQuestionService(conn, m)
	as := services.NewAnswerService(conn, m)
	es := services.NewExamService(conn, m)

	return &App{
		config:          cfg,
		logger:          logger,
		db:              conn,
		userService:     us,
		questionService: qs,
		answerService:   as,
		examService:     es,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.userService,
		app.questionService,
		app.answerService,
		app.examService,
		app.config.SecureCookies,
		app.config.SessionValidityDuration,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if app.config.BootstrapAdminPassword == "admin123" {
		app.logger.Warn(ctx, "bootstrap admin password is the default, change it")
	}

	if err := app.userService.EnsureBootstrapAdmin(ctx,
		app.config.BootstrapAdminName,
		app.config.BootstrapAdminEmail,
		app.config.BootstrapAdminPassword,
	); err != nil {
		return fmt.Errorf("bootstrap admin error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}
