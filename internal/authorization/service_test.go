package authorization

import (
	"context"
	"testing"

	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, role TEXT NOT NULL)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO users (id, role) VALUES (1001, 'viewer'), (1002, 'editor'), (1003, 'admin'), (1004, 'guest')`).Error)

	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)

	return NewService(Params{DB: conn, Log: zap.NewNop(), Enforcer: enforcer}), conn
}

func TestAuthorizeRoles(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		actor  string
		action string
		want   error
	}{
		{"user:1001", ActionHeritageSiteView, nil},
		{"user:1001", ActionHeritageSiteCreate, nil},
		{"user:1001", ActionHeritageSiteUpdate, nil},
		{"user:1001", ActionHeritageSiteDelete, nil},
		{"user:1002", ActionHeritageSiteCreate, nil},
		{"user:1002", ActionHeritageSiteDelete, nil},
		{"user:1003", ActionHeritageSiteDelete, nil},
		{"user:1003", ActionHeritageSiteView, nil},
		{"user:1004", ActionHeritageSiteCreate, nil},
		{"user:9999", ActionHeritageSiteView, ErrForbidden},
		{"system", ActionHeritageSiteDelete, nil},
	}
	for _, tc := range cases {
		t.Run(tc.actor+" "+tc.action, func(t *testing.T) {
			err := svc.Authorize(ctx, tc.actor, ObjectHeritageSite, tc.action)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthorizeFollowsRoleChange(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, role TEXT NOT NULL)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO users (id, role) VALUES (1002, 'editor')`).Error)
	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)
	svc := NewService(Params{DB: conn, Log: zap.NewNop(), Enforcer: enforcer})
	ctx := context.Background()

	require.NoError(t, svc.Authorize(ctx, "user:1002", ObjectHeritageSite, ActionHeritageSiteUpdate))
	roles, err := enforcer.GetRolesForUser("user:1002")
	require.NoError(t, err)
	assert.Equal(t, []string{"role:editor"}, roles)

	require.NoError(t, conn.Exec(`UPDATE users SET role = 'admin' WHERE id = 1002`).Error)
	require.NoError(t, svc.Authorize(ctx, "user:1002", ObjectHeritageSite, ActionHeritageSiteDelete))
	roles, err = enforcer.GetRolesForUser("user:1002")
	require.NoError(t, err)
	assert.Equal(t, []string{"role:admin"}, roles)

	require.NoError(t, conn.Exec(`DELETE FROM users WHERE id = 1002`).Error)
	assert.ErrorIs(t, svc.Authorize(ctx, "user:1002", ObjectHeritageSite, ActionHeritageSiteView), ErrForbidden)
}

func TestAuthorizeInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "", ObjectHeritageSite, ActionHeritageSiteView), ErrInvalidActor)
	assert.ErrorIs(t, svc.Authorize(ctx, "robot", ObjectHeritageSite, ActionHeritageSiteView), ErrInvalidActor)
	assert.ErrorIs(t, svc.Authorize(ctx, "user:abc", ObjectHeritageSite, ActionHeritageSiteView), ErrInvalidActor)
	assert.ErrorIs(t, svc.Authorize(ctx, "system", " ", ActionHeritageSiteView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, "system", ObjectHeritageSite, ""), ErrInvalidAction)
}

func TestEnforcerSeedIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	_, err = NewEnforcer(conn)
	require.NoError(t, err)
	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)

	policies, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, 10)
}
