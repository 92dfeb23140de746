package server

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/smallbiznis/heritage/internal/auth/session"
	obscontext "github.com/smallbiznis/heritage/internal/observability/context"
)

const (
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"
	contextAuthTypeKey = "auth_type"

	authTypeSession = "session"
	authTypeBearer  = "bearer"
)

// OptionalAuth resolves the caller when credentials are present and lets
// anonymous requests through.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.resolveActor(c)
		c.Next()
	}
}

// WebAuthRequired sends anonymous page visitors to the login page.
func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := s.resolveActor(c); !ok {
			c.Redirect(http.StatusFound, session.LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired accepts a session cookie or a bearer token.
func (s *Server) APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := s.resolveActor(c); !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func (s *Server) redirectIfLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := s.resolveActor(c); ok {
			c.Redirect(http.StatusFound, session.SafeNext(c.Query("next"), "/"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveActor authenticates the request once and caches the user id on
// the gin context. Bearer tokens win over the session cookie.
func (s *Server) resolveActor(c *gin.Context) (snowflake.ID, bool) {
	if userID, ok := s.userIDFromSession(c); ok {
		return userID, true
	}

	if raw, ok := bearerToken(c); ok {
		claims, err := s.parseBearer(raw)
		if err != nil {
			return 0, false
		}
		userID, err := claims.UserID()
		if err != nil {
			return 0, false
		}
		s.setActor(c, userID, claims.Role, authTypeBearer)
		return userID, true
	}

	if s.sessions == nil || s.authsvc == nil {
		return 0, false
	}
	raw, ok := s.sessions.ReadToken(c)
	if !ok {
		return 0, false
	}
	sess, err := s.authsvc.Authenticate(c.Request.Context(), raw)
	if err != nil || sess == nil {
		return 0, false
	}
	s.setActor(c, sess.UserID, "", authTypeSession)
	return sess.UserID, true
}

func (s *Server) setActor(c *gin.Context, userID snowflake.ID, role, authType string) {
	c.Set(contextUserIDKey, userID.String())
	c.Set(contextAuthTypeKey, authType)
	if role != "" {
		c.Set(contextUserRoleKey, role)
	}
	ctx := obscontext.WithActor(c.Request.Context(), actorKindUser, userID.String())
	c.Request = c.Request.WithContext(ctx)
}

func (s *Server) userIDFromSession(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	raw, ok := value.(string)
	if !ok {
		return 0, false
	}
	userID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}

var validatorTagNamesOnce sync.Once

// registerValidatorTagNames makes validation errors report json/form names
// instead of Go field names.
func registerValidatorTagNames() {
	validatorTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}
