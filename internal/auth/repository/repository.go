package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/heritage/internal/auth/domain"
	"gorm.io/gorm"
)

// New returns the user and session stores, both backed by conn.
func New(conn *gorm.DB) (domain.UserRepository, domain.SessionRepository) {
	return &userStore{db: conn}, &sessionStore{db: conn}
}

// first loads one row matching query into a T, reporting notFound when
// nothing matches.
func first[T any](ctx context.Context, db *gorm.DB, notFound error, query any, args ...any) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// updateByID applies fields to the row of model with the given id.
func updateByID(ctx context.Context, db *gorm.DB, model any, id snowflake.ID, fields map[string]any, notFound error) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id.Int64()).Updates(fields)
	switch {
	case res.Error != nil:
		return res.Error
	case res.RowsAffected == 0:
		return notFound
	default:
		return nil
	}
}
