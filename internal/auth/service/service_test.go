package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/auth/password"
	"github.com/smallbiznis/heritage/internal/auth/repository"
	"github.com/smallbiznis/heritage/internal/authorization"
	"github.com/smallbiznis/heritage/pkg/db"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user == nil {
		t.Fatal("expected user")
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserDefaultsToEditor(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    " Bob@Example.com ",
		Password: "strong-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user.Role != authorization.RoleEditor {
		t.Fatalf("expected role editor, got %s", user.Role)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.DisplayName != "bob" {
		t.Fatalf("expected display name bob, got %s", user.DisplayName)
	}

	_, err = svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "bob@example.com",
		Password: "another-password",
	})
	if err != authdomain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserRejectsInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "nope", Password: "long-enough"}); err != authdomain.ErrInvalidEmail {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "c@example.com", Password: "short"}); err != authdomain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "c@example.com", Password: "long-enough", Role: "root"}); err != authorization.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    "carol@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	result, err := svc.Login(ctx, authdomain.LoginRequest{
		Email:    "carol@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected raw token")
	}
	if result.Session.Role != authorization.RoleEditor {
		t.Fatalf("expected editor session, got %s", result.Session.Role)
	}

	session, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.UserID != result.UserID {
		t.Fatalf("expected session for %s, got %s", result.UserID, session.UserID)
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); err != authdomain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	removed, err := svc.PurgeSessions(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one purged session, got %d", removed)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); err != authdomain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession after purge, got %v", err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin, created, err := svc.EnsureAdmin(ctx, "admin@heritage.local", "admin")
	if err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if !created || admin.Role != authorization.RoleAdmin || !admin.IsDefault {
		t.Fatalf("unexpected admin %+v created=%v", admin, created)
	}

	again, created, err := svc.EnsureAdmin(ctx, "admin@heritage.local", "other")
	if err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if created || again.ID != admin.ID {
		t.Fatalf("expected existing admin, got created=%v id=%s", created, again.ID)
	}

	if _, err := svc.Verify(ctx, "admin@heritage.local", "admin"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin, _, err := svc.EnsureAdmin(ctx, "admin@heritage.local", "admin")
	if err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}
	if err := svc.ChangePassword(ctx, admin.ID.String(), "a-much-better-one"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Verify(ctx, "admin@heritage.local", "admin"); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	user, err := svc.GetUser(ctx, admin.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.IsDefault || user.LastPasswordChanged == nil {
		t.Fatalf("expected rotated password state, got %+v", user)
	}
}

func TestVerifyUpgradesWeakHash(t *testing.T) {
	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	repo, sessionRepo := repository.New(dbConn)
	node, _ := snowflake.NewNode(1)
	svc := New(zap.NewNop(), repo, sessionRepo, node)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, authdomain.CreateUserRequest{Email: "old@example.com", Password: "legacy-password"})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// salt "saltsalt", key of "legacy-password" at m=8192,t=1,p=1
	weak := "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHQ$" + weakKey("legacy-password")
	if err := repo.UpdateUser(ctx, user.ID, map[string]any{"password_hash": weak}); err != nil {
		t.Fatalf("failed to store weak hash: %v", err)
	}

	if _, err := svc.Verify(ctx, "old@example.com", "legacy-password"); err != nil {
		t.Fatalf("expected weak hash to verify, got %v", err)
	}

	stored, err := repo.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.PasswordHash == nil || *stored.PasswordHash == weak || password.NeedsRehash(*stored.PasswordHash) {
		t.Fatalf("expected hash to be upgraded, got %v", stored.PasswordHash)
	}
}

func weakKey(plain string) string {
	key := argon2.IDKey([]byte(plain), []byte("saltsalt"), 1, 8192, 1, 32)
	return base64.RawStdEncoding.EncodeToString(key)
}
