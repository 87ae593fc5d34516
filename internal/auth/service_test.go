package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/internal/users"
	pkgAuth "github.com/saikrishna-dev/mandimitra-backend/pkg/auth"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/config"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/security"
)

type stubUserRepo struct {
	byUsername map[string]*models.User
	created    []*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: make(map[string]*models.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byUsername[user.Username] = user
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	generated map[string]string
	revoked   []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{generated: make(map[string]string)}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	delete(s.generated, oldAccessID)
	newID := uuid.NewString()
	token := "refresh-" + newID
	s.generated[newID] = token
	return newID, token, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "mandimitra",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 10080,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "Ravi_Vendor",
		Password: "secret123",
		Name:     "Ravi",
		Mobile:   "9876543210",
		Role:     enums.RoleVendor,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Username != "ravi_vendor" {
		t.Fatalf("expected lowered username, got %+v", resp.User)
	}
	if resp.User.PreferredLanguage != enums.DefaultLanguage {
		t.Fatalf("expected default language %s, got %s", enums.DefaultLanguage, resp.User.PreferredLanguage)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Role != enums.RoleVendor {
		t.Fatalf("unexpected role in claims: %s", claims.Role)
	}
	if _, ok := sessions.generated[claims.ID]; !ok {
		t.Fatal("expected refresh session keyed by jti")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc := newTestService(t, repo, sessions)

	req := RegisterRequest{
		Username: "seema",
		Password: "secret123",
		Name:     "Seema",
		Mobile:   "9876500000",
		Role:     enums.RoleWholesaler,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(t, newStubUserRepo(), newStubSessionManager())

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "someone",
		Password: "secret123",
		Name:     "Someone",
		Mobile:   "9876500001",
		Role:     "admin",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc := newTestService(t, repo, sessions)

	hash, err := security.HashPassword("correct-password", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.byUsername["ravi"] = &models.User{
		ID:           uuid.New(),
		Username:     "ravi",
		PasswordHash: hash,
		Role:         enums.RoleVendor,
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "ravi", Password: "correct-password"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Username: "ravi", Password: "wrong"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Username: "unknown", Password: "whatever"})
	if appErr = pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "kiran",
		Password: "secret123",
		Name:     "Kiran",
		Mobile:   "9876500002",
		Role:     enums.RoleVendor,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), resp.AccessToken, RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("expected rotated token pair")
	}
	if refreshed.AccessToken == resp.AccessToken {
		t.Fatal("expected a new access token")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.Role != enums.RoleVendor {
		t.Fatalf("role lost during rotation: %s", claims.Role)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc := newTestService(t, repo, sessions)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("expected revoked access id, got %v", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}
