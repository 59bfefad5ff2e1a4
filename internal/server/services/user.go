// Package services contains server-side business logic. This file
// implements UserService: login/logout, session validation against the
// single per-user token slot, and admin user management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/server/auth"
	"github.com/dsantanna/quizdeck/internal/server/config"
	"github.com/dsantanna/quizdeck/internal/server/models"
	"github.com/dsantanna/quizdeck/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides authentication and account operations:
//   - Login: verify credentials, mint a session token and store it as the
//     user's single live session
//   - ValidateSession: cross-check a presented token against signature,
//     stored token and the active flag
//   - Logout: best-effort clearing of the stored token
//   - admin CRUD over user records
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Login verifies the email/password pair and, on success, issues a fresh
// session token and persists it onto the user row together with the
// last-login timestamp. The previous token, if any, stops validating at
// that moment.
//
// Unknown email and wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Sanitized, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", common.ErrAccountDisabled
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	if err := repo.SetSessionToken(ctx, user.ID, token); err != nil {
		return nil, "", common.ErrorInternal
	}

	return user.Sanitize(), token, nil
}

// ValidateSession resolves a presented token to its user. Every expected
// failure (bad signature, expiry, token not matching the stored slot,
// unknown user, deactivated account) collapses into ErrInvalidToken so
// callers cannot tell why validation failed.
func (s *UserService) ValidateSession(ctx context.Context, token string) (*models.Sanitized, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	// Revocation by overwrite: only the exact stored token is live.
	if user.SessionToken == "" || user.SessionToken != token {
		return nil, common.ErrInvalidToken
	}

	if !user.IsActive {
		return nil, common.ErrInvalidToken
	}

	return user.Sanitize(), nil
}

// Logout clears the stored session token of the user the presented token
// decodes to. A token that fails to decode is ignored: logout is
// idempotent and never reports an expected failure.
func (s *UserService) Logout(ctx context.Context, token string) error {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}

	err = s.repomanager.Users(s.db).ClearSessionToken(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}

	return nil
}

// Create registers a new user record. Admin-only at the HTTP boundary.
func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*models.Sanitized, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if role != models.RoleAdmin && role != models.RoleCommon {
		return nil, common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return created.Sanitize(), nil
}

// List returns every user record with credentials blanked out.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	result, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	for _, user := range result {
		user.PasswordHash = ""
		user.SessionToken = ""
	}

	return result, nil
}

// Update changes name, email, role and active flag of a user. Deactivating
// a user kills their live session on the next validation, since the
// validator gates on the active flag.
func (s *UserService) Update(ctx context.Context, id, name, email, role string, isActive bool) error {
	if name == "" || email == "" {
		return common.ErrorValidation
	}
	if role != models.RoleAdmin && role != models.RoleCommon {
		return common.ErrorValidation
	}

	user := &models.User{ID: id, Name: name, Email: email, Role: role, IsActive: isActive}

	err := s.repomanager.Users(s.db).Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
			return err
		}
		return common.ErrorInternal
	}

	return nil
}

// Delete removes a user record. The bootstrap admin is protected.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == common.BootstrapAdminID {
		return common.ErrorValidation
	}

	err := s.repomanager.Users(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	return nil
}

// EnsureBootstrapAdmin seeds the fixed admin record when the users table
// is empty, mirroring first-run initialization.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, name, email, password string) error {
	repo := s.repomanager.Users(s.db)

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("user count error: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin hash error: %w", err)
	}

	admin := &models.User{
		ID:           common.BootstrapAdminID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap admin create error: %w", err)
	}

	return nil
}
