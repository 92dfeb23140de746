package token

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := newIssuer([]byte("0123456789abcdef0123456789abcdef"), 10*time.Minute)

	raw, expiresAt, err := issuer.Issue(snowflake.ID(42), "editor")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Role)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), id)
}

func TestParseRejectsForeignKey(t *testing.T) {
	a := newIssuer([]byte("key-a-key-a-key-a-key-a-key-a-aa"), time.Minute)
	b := newIssuer([]byte("key-b-key-b-key-b-key-b-key-b-bb"), time.Minute)

	raw, _, err := a.Issue(snowflake.ID(7), "viewer")
	require.NoError(t, err)

	_, err = b.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	issuer := newIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := issuer.Issue(snowflake.ID(7), "viewer")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
