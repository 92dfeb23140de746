package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/heritage/internal/auth/token"
)

const bearerScheme = "Bearer"

// bearerToken extracts the credential of an "Authorization: Bearer" header.
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}

func (s *Server) parseBearer(raw string) (*token.Claims, error) {
	if s.tokens == nil {
		return nil, token.ErrInvalidToken
	}
	return s.tokens.Parse(raw)
}
