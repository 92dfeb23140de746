package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const actorKindUser = "user"

// userSubject is the casbin subject for a signed-in user.
func userSubject(id snowflake.ID) string {
	return actorKindUser + ":" + id.String()
}

// authorize gates a route on the casbin policy. Routes must resolve the
// user first with WebAuthRequired or APIAuthRequired; an unresolved user
// is treated as unauthenticated.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := s.userIDFromSession(c)
		switch {
		case !ok:
			AbortWithError(c, ErrUnauthorized)
			return
		case s.authzSvc == nil:
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), userSubject(userID), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
