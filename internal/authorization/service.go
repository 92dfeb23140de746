package authorization

import (
	"context"
	"errors"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrInvalidRole   = errors.New("invalid_role")
)

const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Service decides whether an actor may perform an action on an object.
type Service interface {
	// Authorize returns nil when allowed, ErrForbidden when denied.
	// actor is "system" or "user:<snowflake id>".
	Authorize(ctx context.Context, actor string, object string, action string) error
}

// ValidRole reports whether role is one of the known catalog roles.
func ValidRole(role string) bool {
	switch role {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	default:
		return false
	}
}
