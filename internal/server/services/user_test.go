package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dsantanna/quizdeck/internal/common"
	"github.com/dsantanna/quizdeck/internal/server/auth"
	"github.com/dsantanna/quizdeck/internal/server/config"
	"github.com/dsantanna/quizdeck/internal/server/models"
)

const testSecret = "test-secret"

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:               testSecret,
		SessionValidityDuration: time.Hour,
	}
	return NewUserService(newSQLMockDB(t), rm, cfg)
}

func seedUser(t *testing.T, id, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{
		ID:           id,
		Name:         "Alice",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCommon,
		IsActive:     active,
	}
}

func TestLogin_Success_TokenRoundTrips(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", true))
	s := newUserService(t, &fakeRepoManager{u: repo})

	user, token, err := s.Login(context.Background(), "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u1" || user.Email != "alice@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	gotID, err := auth.GetUserIDFromToken(token, []byte(testSecret))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if gotID != "u1" {
		t.Fatalf("token user id mismatch: got %q", gotID)
	}

	// the freshly issued token validates to the same user
	validated, err := s.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateSession error: %v", err)
	}
	if validated.ID != "u1" {
		t.Fatalf("validated user mismatch: %+v", validated)
	}
}

func TestLogin_WrongPassword_SameKindAsUnknownEmail(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", true))
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, _, errWrongPassword := s.Login(context.Background(), "alice@x.com", "nope")
	_, _, errUnknownEmail := s.Login(context.Background(), "bob@x.com", "pw1")

	if !errors.Is(errWrongPassword, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, common.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", errUnknownEmail)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", false))
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, _, err := s.Login(context.Background(), "alice@x.com", "pw1")
	if !errors.Is(err, common.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLogin_StorageFailureIsNotCredentialsError(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.failWith = errors.New("db down")
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, _, err := s.Login(context.Background(), "alice@x.com", "pw1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}
	if errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatal("storage failure must not read as invalid credentials")
	}
}

func TestLogin_SecondLoginSupersedesFirstToken(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", true))
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	_, tokenA, err := s.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("first Login error: %v", err)
	}
	_, tokenB, err := s.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("second Login error: %v", err)
	}
	if tokenA == tokenB {
		t.Fatal("re-login must issue a distinct token")
	}

	if _, err := s.ValidateSession(ctx, tokenA); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("superseded token must be invalid, got %v", err)
	}
	if _, err := s.ValidateSession(ctx, tokenB); err != nil {
		t.Fatalf("current token must validate, got %v", err)
	}
}

func TestValidateSession_DeactivationKillsLiveSession(t *testing.T) {
	user := seedUser(t, "u1", "alice@x.com", "pw1", true)
	repo := newFakeUsersRepo(user)
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	_, token, err := s.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if _, err := s.ValidateSession(ctx, token); err != nil {
		t.Fatalf("ValidateSession error: %v", err)
	}

	repo.byID["u1"].IsActive = false

	if _, err := s.ValidateSession(ctx, token); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("deactivated user's token must be invalid, got %v", err)
	}
}

func TestValidateSession_ExpiredButMatchingTokenRejected(t *testing.T) {
	user := seedUser(t, "u1", "alice@x.com", "pw1", true)
	repo := newFakeUsersRepo(user)
	s := newUserService(t, &fakeRepoManager{u: repo})

	expired, err := auth.GenerateToken("u1", []byte(testSecret), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	repo.byID["u1"].SessionToken = expired

	if _, err := s.ValidateSession(context.Background(), expired); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expired token must be invalid even when stored, got %v", err)
	}
}

func TestValidateSession_TokenForUnknownUser(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})

	token, err := auth.GenerateToken("ghost", []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := s.ValidateSession(context.Background(), token); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateSession_SanitizedProjection(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", true))
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	_, token, err := s.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	user, err := s.ValidateSession(ctx, token)
	if err != nil {
		t.Fatalf("ValidateSession error: %v", err)
	}
	if user.ID != "u1" || user.Name != "Alice" || user.Email != "alice@x.com" || user.Role != models.RoleCommon {
		t.Fatalf("unexpected projection: %+v", user)
	}
}

func TestLogout_FullScenario(t *testing.T) {
	repo := newFakeUsersRepo(seedUser(t, "u1", "alice@x.com", "pw1", true))
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	_, tokenB, err := s.Login(ctx, "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if err := s.Logout(ctx, tokenB); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if _, err := s.ValidateSession(ctx, tokenB); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("token must be invalid after logout, got %v", err)
	}

	// idempotent: repeated and garbage logouts never error
	if err := s.Logout(ctx, tokenB); err != nil {
		t.Fatalf("second Logout error: %v", err)
	}
	if err := s.Logout(ctx, "not.a.jwt"); err != nil {
		t.Fatalf("garbage Logout error: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})
	ctx := context.Background()

	if _, err := s.Create(ctx, "", "a@x.com", "pw", models.RoleCommon); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty name: got %v", err)
	}
	if _, err := s.Create(ctx, "A", "a@x.com", "pw", "superuser"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("bad role: got %v", err)
	}

	user, err := s.Create(ctx, "A", "a@x.com", "pw", models.RoleCommon)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := s.Create(ctx, "B", "a@x.com", "pw", models.RoleCommon); !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestDelete_BootstrapAdminProtected(t *testing.T) {
	admin := seedUser(t, common.BootstrapAdminID, "admin@quizdeck.local", "admin123", true)
	repo := newFakeUsersRepo(admin)
	s := newUserService(t, &fakeRepoManager{u: repo})

	err := s.Delete(context.Background(), common.BootstrapAdminID)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("bootstrap admin delete must be refused, got %v", err)
	}
	if _, ok := repo.byID[common.BootstrapAdminID]; !ok {
		t.Fatal("bootstrap admin must still exist")
	}
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	repo := newFakeUsersRepo()
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	if err := s.EnsureBootstrapAdmin(ctx, "Administrator", "admin@quizdeck.local", "admin123"); err != nil {
		t.Fatalf("EnsureBootstrapAdmin error: %v", err)
	}

	admin, ok := repo.byID[common.BootstrapAdminID]
	if !ok {
		t.Fatal("expected seeded admin")
	}
	if admin.Role != models.RoleAdmin || !admin.IsActive {
		t.Fatalf("unexpected admin record: %+v", admin)
	}
	if !auth.CheckPassword("admin123", admin.PasswordHash) {
		t.Fatal("seeded password must verify")
	}

	// a second run on a populated table is a no-op
	if err := s.EnsureBootstrapAdmin(ctx, "Other", "other@x.com", "pw"); err != nil {
		t.Fatalf("second EnsureBootstrapAdmin error: %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.byID))
	}
}

func TestList_BlanksCredentials(t *testing.T) {
	user := seedUser(t, "u1", "alice@x.com", "pw1", true)
	user.SessionToken = "live-token"
	repo := newFakeUsersRepo(user)
	s := newUserService(t, &fakeRepoManager{u: repo})

	result, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 user, got %d", len(result))
	}
	if result[0].PasswordHash != "" || result[0].SessionToken != "" {
		t.Fatalf("credentials must be blanked: %+v", result[0])
	}
}
