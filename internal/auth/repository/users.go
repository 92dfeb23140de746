package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/domain"
	"gorm.io/gorm"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error
	return n, err
}

func (s *userStore) InsertUser(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return first[domain.User](ctx, s.db, domain.ErrUserNotFound, "email = ?", email)
}

func (s *userStore) GetUser(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	return first[domain.User](ctx, s.db, domain.ErrUserNotFound, "id = ?", id.Int64())
}

func (s *userStore) UpdateUser(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return updateByID(ctx, s.db, &domain.User{}, id, fields, domain.ErrUserNotFound)
}
