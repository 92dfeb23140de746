// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// User is an account allowed to edit the catalog. Role is one of the
// authorization roles (viewer, editor, admin).
type User struct {
	ID                  snowflake.ID      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Email               string            `gorm:"column:email;size:254;not null;uniqueIndex" json:"email"`
	DisplayName         string            `gorm:"column:display_name;size:150;not null" json:"display_name"`
	Role                string            `gorm:"column:role;size:20;not null" json:"role"`
	PasswordHash        *string           `gorm:"column:password_hash;type:text" json:"-"`
	IsDefault           bool              `gorm:"column:is_default;not null" json:"is_default"`
	LastPasswordChanged *time.Time        `gorm:"column:last_password_changed" json:"last_password_changed,omitempty"`
	Metadata            datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt           time.Time         `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session. Only the SHA-256 of the
// cookie value is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;size:64;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;size:64"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// SessionView is returned to clients without exposing token values.
type SessionView struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}
