package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/domain"
	"gorm.io/gorm"
)

type sessionStore struct {
	db *gorm.DB
}

func (s *sessionStore) InsertSession(ctx context.Context, session *domain.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *sessionStore) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return first[domain.Session](ctx, s.db, domain.ErrSessionNotFound, "session_token_hash = ?", tokenHash)
}

func (s *sessionStore) TouchSession(ctx context.Context, id snowflake.ID, seenAt time.Time) error {
	return updateByID(ctx, s.db, &domain.Session{}, id, map[string]any{"last_seen_at": seenAt}, domain.ErrSessionNotFound)
}

func (s *sessionStore) RevokeSession(ctx context.Context, id snowflake.ID, revokedAt time.Time) error {
	return updateByID(ctx, s.db, &domain.Session{}, id, map[string]any{"revoked_at": revokedAt}, domain.ErrSessionNotFound)
}

// DeleteSessionsBefore removes sessions whose expiry or revocation is older
// than cutoff.
func (s *sessionStore) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", cutoff).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}
