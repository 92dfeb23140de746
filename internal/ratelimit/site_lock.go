package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"go.uber.org/zap"
)

const (
	keySiteEditLock    = "heritage:site:edit:%d"
	defaultSiteLockTTL = 30 * time.Second
	siteUnlockTimeout  = 2 * time.Second
)

// unlockSite deletes the edit key only while it still holds our owner token,
// so an expired lock taken over by another writer is left alone.
var unlockSite = redis.NewScript(`
local owner = redis.call("GET", KEYS[1])
if owner == false or owner ~= ARGV[1] then
  return 0
end
return redis.call("DEL", KEYS[1])
`)

var errSiteLockNotConfigured = errors.New("site lock not configured")

// SiteLocker serializes writes to one heritage site across replicas.
type SiteLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewSiteLocker(client *redis.Client, cfg config.Config, log *zap.Logger) domain.EditLocker {
	if client == nil {
		return nil
	}
	ttl := cfg.RateLimit.SiteLockTTL
	if ttl <= 0 {
		ttl = defaultSiteLockTTL
	}
	return &SiteLocker{
		client: client,
		ttl:    ttl,
		log:    log.Named("ratelimit.site_lock"),
	}
}

func siteLockKey(siteID int) string {
	return fmt.Sprintf(keySiteEditLock, siteID)
}

// LockSite claims the edit key of siteID or returns ErrSiteLocked when another
// writer holds it. The release func is safe to call once the write finished.
func (s *SiteLocker) LockSite(ctx context.Context, siteID int) (func(), error) {
	if s == nil || s.client == nil {
		return nil, errSiteLockNotConfigured
	}

	key := siteLockKey(siteID)
	owner := uuid.NewString()
	acquired, err := s.client.SetNX(ctx, key, owner, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, domain.ErrSiteLocked
	}

	return func() {
		// the request context may already be cancelled
		unlockCtx, cancel := context.WithTimeout(context.Background(), siteUnlockTimeout)
		defer cancel()
		if err := unlockSite.Run(unlockCtx, s.client, []string{key}, owner).Err(); err != nil {
			s.log.Warn("release site lock failed", zap.Int("site_id", siteID), zap.Error(err))
		}
	}, nil
}
