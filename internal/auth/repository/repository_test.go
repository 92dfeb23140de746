package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) (domain.UserRepository, domain.SessionRepository) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}, &domain.Session{}))
	return New(conn)
}

func TestUserLookups(t *testing.T) {
	users, _ := newStores(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := &domain.User{ID: snowflake.ID(11), Email: "ed@example.com", DisplayName: "ed", Role: "editor", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.InsertUser(ctx, user))

	found, err := users.FindByEmail(ctx, "ed@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, users.UpdateUser(ctx, user.ID, map[string]any{"role": "admin"}))
	byID, err := users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Role)

	assert.ErrorIs(t, users.UpdateUser(ctx, snowflake.ID(99), map[string]any{"role": "admin"}), domain.ErrUserNotFound)

	count, err := users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteSessionsBefore(t *testing.T) {
	_, sessions := newStores(t)
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	revokedLongAgo := cutoff.Add(-time.Hour)
	revokedRecently := cutoff.Add(time.Minute)

	rows := []*domain.Session{
		{ID: 1, UserID: 11, SessionTokenHash: "expired", ExpiresAt: cutoff.Add(-time.Minute)},
		{ID: 2, UserID: 11, SessionTokenHash: "live", ExpiresAt: cutoff.Add(time.Hour)},
		{ID: 3, UserID: 11, SessionTokenHash: "revoked-old", ExpiresAt: cutoff.Add(time.Hour), RevokedAt: &revokedLongAgo},
		{ID: 4, UserID: 11, SessionTokenHash: "revoked-new", ExpiresAt: cutoff.Add(time.Hour), RevokedAt: &revokedRecently},
	}
	for _, row := range rows {
		row.CreatedAt = cutoff.Add(-2 * time.Hour)
		row.LastSeenAt = row.CreatedAt
		require.NoError(t, sessions.InsertSession(ctx, row))
	}

	removed, err := sessions.DeleteSessionsBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = sessions.FindSessionByTokenHash(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	live, err := sessions.FindSessionByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(2), live.ID)
	_, err = sessions.FindSessionByTokenHash(ctx, "revoked-new")
	assert.NoError(t, err)

	assert.ErrorIs(t, sessions.RevokeSession(ctx, 42, cutoff), domain.ErrSessionNotFound)
}
