package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/observability/metrics"
	"go.uber.org/zap"
)

const keyLoginAttempt = "heritage:login:%s"

// takeLoginAttempt refills the attempt bucket of one client from the redis
// clock and takes one attempt when available.
// ARGV: refill rate per second, burst, key ttl in ms.
// Returns {granted, attempts left}.
var takeLoginAttempt = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local clock = redis.call("TIME")
local nowMs = clock[1] * 1000 + math.floor(clock[2] / 1000)

local state = redis.call("HMGET", KEYS[1], "left", "at")
local left = tonumber(state[1]) or burst
local at = tonumber(state[2]) or nowMs
if nowMs > at then
  left = math.min(burst, left + (nowMs - at) / 1000 * rate)
end

local granted = 0
if left >= 1 then
  granted = 1
  left = left - 1
end

redis.call("HSET", KEYS[1], "left", tostring(left), "at", nowMs)
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return {granted, tostring(left)}
`)

// LoginDecision is the outcome of one throttled credential check.
type LoginDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

var allowLogin = &LoginDecision{Allowed: true}

// LoginLimiter throttles credential checks per client address.
type LoginLimiter struct {
	client  *redis.Client
	rate    float64
	burst   int
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewLoginLimiter(client *redis.Client, cfg config.Config, log *zap.Logger, m *metrics.Metrics) *LoginLimiter {
	if client == nil {
		return nil
	}
	rate := cfg.RateLimit.LoginRate
	burst := cfg.RateLimit.LoginBurst
	if rate <= 0 || burst <= 0 {
		return nil
	}
	return &LoginLimiter{
		client:  client,
		rate:    rate,
		burst:   burst,
		log:     log.Named("ratelimit.login"),
		metrics: m,
	}
}

// Allow consumes one attempt for clientKey. A nil limiter always allows.
// Redis failures fail open so an outage never locks users out.
func (l *LoginLimiter) Allow(ctx context.Context, endpoint, clientKey string) *LoginDecision {
	if l == nil {
		return allowLogin
	}
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		clientKey = "unknown"
	}

	decision, err := l.take(ctx, fmt.Sprintf(keyLoginAttempt, clientKey))
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return allowLogin
	}
	if decision.Allowed {
		l.metrics.RecordRateLimitAllowed(ctx, endpoint)
	} else {
		l.metrics.RecordRateLimitDenied(ctx, endpoint, "exhausted")
	}
	return decision
}

func (l *LoginLimiter) take(ctx context.Context, key string) (*LoginDecision, error) {
	ttl := attemptWindow(l.rate, l.burst)
	reply, err := takeLoginAttempt.Run(ctx, l.client, []string{key}, l.rate, l.burst, ttl.Milliseconds()).Slice()
	if err != nil {
		return nil, err
	}
	if len(reply) != 2 {
		return nil, errors.New("unexpected login limiter reply")
	}
	return decide(replyInt(reply[0]) == 1, replyFloat(reply[1]), l.rate), nil
}

func decide(granted bool, left, rate float64) *LoginDecision {
	d := &LoginDecision{Allowed: granted, Remaining: int(left)}
	if !granted && rate > 0 {
		d.RetryAfter = time.Duration(math.Ceil((1-left)/rate*1000)) * time.Millisecond
	}
	return d
}

// attemptWindow is how long an idle bucket is kept: twice the time a drained
// bucket needs to refill, at least one second.
func attemptWindow(rate float64, burst int) time.Duration {
	if rate <= 0 || burst <= 0 {
		return time.Second
	}
	seconds := math.Ceil(2 * float64(burst) / rate)
	return time.Duration(math.Max(seconds, 1)) * time.Second
}

func replyInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	}
	return 0
}

// replyFloat reads a lua number sent back as a string to keep its fraction.
func replyFloat(v any) float64 {
	switch n := v.(type) {
	case string:
		parsed, _ := strconv.ParseFloat(n, 64)
		return parsed
	case int64:
		return float64(n)
	}
	return 0
}
