package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/auth/password"
	"github.com/smallbiznis/heritage/internal/authorization"
	"github.com/smallbiznis/heritage/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
)

type Service struct {
	log         *zap.Logger
	repo        domain.UserRepository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
}

func New(log *zap.Logger, repo domain.UserRepository, sessionRepo domain.SessionRepository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:         log.Named("auth.service"),
		repo:        repo,
		sessionRepo: sessionRepo,
		genID:       genID,
	}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = authorization.RoleEditor
	}
	if !authorization.ValidRole(role) {
		return nil, authorization.ErrInvalidRole
	}

	return s.createUser(ctx, email, req.Password, req.DisplayName, role, false)
}

func (s *Service) EnsureAdmin(ctx context.Context, email, pass string) (*domain.User, bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, false, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(pass) == "" {
		return nil, false, domain.ErrWeakPassword
	}

	existing, err := s.repo.FindByEmail(ctx, normalized)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := s.createUser(ctx, normalized, pass, "", authorization.RoleAdmin, true)
	if err != nil {
		return nil, false, err
	}
	s.log.Info("bootstrap admin created", zap.String("user_id", user.ID.String()))
	return user, true, nil
}

func (s *Service) createUser(ctx context.Context, email, rawPassword, displayName, role string, isDefault bool) (*domain.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: &hashed,
		IsDefault:    isDefault,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !isDefault {
		user.LastPasswordChanged = &now
	}

	if err := s.repo.InsertUser(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Verify(ctx context.Context, email, rawPassword string) (*domain.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(rawPassword) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !password.Verify(rawPassword, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if password.NeedsRehash(*user.PasswordHash) {
		s.upgradeHash(ctx, user, rawPassword)
	}
	return user, nil
}

// upgradeHash re-encodes a verified password with the current cost
// settings. Failures keep the old hash usable.
func (s *Service) upgradeHash(ctx context.Context, user *domain.User, rawPassword string) {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return
	}
	if err := s.repo.UpdateUser(ctx, user.ID, map[string]any{"password_hash": hashed}); err != nil {
		s.log.Warn("password rehash failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return
	}
	user.PasswordHash = &hashed
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	user, err := s.Verify(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Session: &domain.SessionView{
			UserID:      user.ID.String(),
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        user.Role,
			ExpiresAt:   session.ExpiresAt.Format(time.RFC3339),
		},
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
		UserID:    user.ID,
	}, nil
}

// Logout revokes the session behind rawToken. Revoking an already revoked
// or expired session is not an error.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessionByToken(ctx, rawToken)
	if err != nil {
		return err
	}
	return s.sessionRepo.RevokeSession(ctx, session.ID, time.Now().UTC())
}

// Authenticate resolves a live session and records that it was seen.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	session, err := s.sessionByToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case session.RevokedAt != nil:
		return nil, domain.ErrSessionRevoked
	case now.After(session.ExpiresAt):
		return nil, domain.ErrSessionExpired
	}
	if err := s.sessionRepo.TouchSession(ctx, session.ID, now); err != nil {
		return nil, err
	}
	session.LastSeenAt = now
	return session, nil
}

func (s *Service) sessionByToken(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}
	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, hashToken(token))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, domain.ErrInvalidSession
	}
	return session, err
}

func (s *Service) GetUser(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

// ChangePassword replaces the password of userID and clears the
// bootstrap flag.
func (s *Service) ChangePassword(ctx context.Context, userID string, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	id, err := snowflake.ParseString(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.repo.UpdateUser(ctx, id, map[string]any{
		"password_hash":         hashed,
		"last_password_changed": now,
		"is_default":            false,
		"updated_at":            now,
	})
}

// PurgeSessions deletes sessions that are expired or were revoked before now.
func (s *Service) PurgeSessions(ctx context.Context, now time.Time) (int64, error) {
	removed, err := s.sessionRepo.DeleteSessionsBefore(ctx, now.UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("sessions purged", zap.Int64("count", removed))
	}
	return removed, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

// defaultDisplayName is the local part of email.
func defaultDisplayName(email string) string {
	if local, _, ok := strings.Cut(email, "@"); ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return email
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
