package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	// EnsureAdmin creates the bootstrap admin unless a user with that email
	// exists. The bool reports whether a user was created.
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)

	// Verify checks credentials without opening a session.
	Verify(ctx context.Context, email, password string) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)

	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
	ChangePassword(ctx context.Context, userID string, newPassword string) error
	PurgeSessions(ctx context.Context, now time.Time) (int64, error)
}

type CreateUserRequest struct {
	Email       string
	Password    string
	DisplayName string
	// Role defaults to editor.
	Role string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Session   *SessionView
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
	UserID    snowflake.ID
}
