package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/heritage/internal/observability/logger"
	"go.uber.org/zap"
)

const rateLimitReasonLoginRate = "login-rate"

// LoginRateLimit throttles credential checks per client IP. Without redis
// the limiter is nil and every request passes.
func (s *Server) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.loginLimiter == nil {
			c.Next()
			return
		}

		endpoint := normalizeRateLimitEndpoint(c)
		res := s.loginLimiter.Allow(c.Request.Context(), endpoint, c.ClientIP())
		if res != nil && !res.Allowed {
			denyLoginRateLimit(c, endpoint, int(res.RetryAfter.Seconds()))
			return
		}
		c.Next()
	}
}

func denyLoginRateLimit(c *gin.Context, endpoint string, retryAfter int) {
	log := logger.FromContext(c.Request.Context())
	log.Warn("login rate limit exceeded",
		zap.String("reason", rateLimitReasonLoginRate),
		zap.String("endpoint", endpoint),
	)

	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.Header("X-Rate-Limited-Reason", rateLimitReasonLoginRate)
	AbortWithError(c, ErrRateLimited)
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}
