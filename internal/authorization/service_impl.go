package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectHeritageSite = "heritage_site"
	ObjectCountryArea  = "country_area"
)

const (
	ActionHeritageSiteView   = "heritage_site.view"
	ActionHeritageSiteCreate = "heritage_site.create"
	ActionHeritageSiteUpdate = "heritage_site.update"
	ActionHeritageSiteDelete = "heritage_site.delete"

	ActionCountryAreaView = "country_area.view"
)

const (
	systemActor = "system"
	userPrefix  = "user:"
	rolePrefix  = "role:"
)

type grant struct{ object, action string }

// grants lists what each role may do on its own; inherited rights come
// from roleParents. Any signed-in user may edit the catalog, so the base
// role already carries every site action.
var grants = map[string][]grant{
	RoleViewer: {
		{ObjectHeritageSite, ActionHeritageSiteView},
		{ObjectHeritageSite, ActionHeritageSiteCreate},
		{ObjectHeritageSite, ActionHeritageSiteUpdate},
		{ObjectHeritageSite, ActionHeritageSiteDelete},
		{ObjectCountryArea, ActionCountryAreaView},
	},
	systemActor: {
		{ObjectHeritageSite, ActionHeritageSiteView},
		{ObjectHeritageSite, ActionHeritageSiteCreate},
		{ObjectHeritageSite, ActionHeritageSiteUpdate},
		{ObjectHeritageSite, ActionHeritageSiteDelete},
		{ObjectCountryArea, ActionCountryAreaView},
	},
}

// roleParents: admin inherits editor, editor inherits viewer.
var roleParents = map[string]string{
	RoleEditor: RoleViewer,
	RoleAdmin:  RoleEditor,
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the casbin model and the persisted policy, then adds
// any missing role grants. Safe to call on every start.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	for role, list := range grants {
		for _, g := range list {
			if _, err := enforcer.AddPolicy(rolePrefix+role, g.object, g.action); err != nil {
				return nil, err
			}
		}
	}
	for child, parent := range roleParents {
		if _, err := enforcer.AddRoleForUser(rolePrefix+child, rolePrefix+parent); err != nil {
			return nil, err
		}
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	object = strings.TrimSpace(object)
	action = strings.TrimSpace(action)
	switch {
	case actor == "":
		return ErrInvalidActor
	case object == "":
		return ErrInvalidObject
	case action == "":
		return ErrInvalidAction
	}

	subject, err := s.subjectFor(ctx, actor)
	if err == nil {
		var allowed bool
		allowed, err = s.enforcer.Enforce(subject, object, action)
		if err == nil && !allowed {
			err = ErrForbidden
		}
	}
	if err != nil {
		s.log.Info("authorization denied",
			zap.String("actor", actor),
			zap.String("object", object),
			zap.String("action", action),
			zap.Error(err),
		)
	}
	return err
}

// subjectFor returns the casbin subject for actor. Users are linked to the
// role currently stored on their row, so a role change applies on the next
// check without reloading the policy. An unknown role falls back to viewer.
func (s *ServiceImpl) subjectFor(ctx context.Context, actor string) (string, error) {
	if actor == systemActor {
		return rolePrefix + systemActor, nil
	}
	raw, ok := strings.CutPrefix(actor, userPrefix)
	if !ok {
		return "", ErrInvalidActor
	}
	userID, err := snowflake.ParseString(raw)
	if err != nil || userID == 0 {
		return "", ErrInvalidActor
	}

	var roles []string
	if err := s.db.WithContext(ctx).
		Table("users").
		Where("id = ?", int64(userID)).
		Limit(1).
		Pluck("role", &roles).Error; err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", ErrForbidden
	}
	role := strings.ToLower(strings.TrimSpace(roles[0]))
	if !ValidRole(role) {
		role = RoleViewer
	}

	subject := userPrefix + userID.String()
	if err := s.linkRole(subject, rolePrefix+role); err != nil {
		return "", err
	}
	return subject, nil
}

func (s *ServiceImpl) linkRole(subject, role string) error {
	current, err := s.enforcer.GetRolesForUser(subject)
	if err != nil {
		return err
	}
	if len(current) == 1 && current[0] == role {
		return nil
	}
	if len(current) > 0 {
		if _, err := s.enforcer.DeleteRolesForUser(subject); err != nil {
			return err
		}
	}
	_, err = s.enforcer.AddRoleForUser(subject, role)
	return err
}
