// Package token issues and verifies the bearer JWTs accepted by the REST API.
package token

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smallbiznis/heritage/internal/config"
	"go.uber.org/zap"
)

const (
	issuer         = "heritage"
	defaultTTL     = time.Hour
	minSecretBytes = 32
)

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrTokenExpired = errors.New("token_expired")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the snowflake id carried in the subject.
func (c *Claims) UserID() (snowflake.ID, error) {
	id, err := snowflake.ParseString(c.Subject)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

type Issuer struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewIssuer signs with AUTH_JWT_SECRET. Without one a random key is used, so
// tokens do not survive a restart.
func NewIssuer(cfg config.Config, log *zap.Logger) (*Issuer, error) {
	key := []byte(strings.TrimSpace(cfg.AuthJWTSecret))
	if len(key) == 0 {
		key = make([]byte, minSecretBytes)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		log.Warn("AUTH_JWT_SECRET not set, using an ephemeral signing key")
	}
	return newIssuer(key, cfg.AuthJWTTTL), nil
}

func newIssuer(key []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{signingKey: key, ttl: ttl, now: time.Now}
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(userID snowflake.ID, role string) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}).SignedString(i.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return i.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
