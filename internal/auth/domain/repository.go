package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks

// UserRepository persists accounts. Lookups return ErrUserNotFound when no
// row matches.
type UserRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	InsertUser(ctx context.Context, user *User) error
	// FindByEmail expects an already normalized address.
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
	UpdateUser(ctx context.Context, id snowflake.ID, fields map[string]any) error
}

// SessionRepository persists login sessions keyed by the hash of their
// cookie token.
type SessionRepository interface {
	InsertSession(ctx context.Context, session *Session) error
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	TouchSession(ctx context.Context, id snowflake.ID, seenAt time.Time) error
	RevokeSession(ctx context.Context, id snowflake.ID, revokedAt time.Time) error
	// DeleteSessionsBefore removes sessions that expired or were revoked
	// before cutoff.
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
