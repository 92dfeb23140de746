package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/auth/session"
	"github.com/smallbiznis/heritage/internal/observability/logger"
	"go.uber.org/zap"
)

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Server) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"next": session.SafeNext(c.Query("next"), "/"),
	})
}

// Login opens a cookie session and redirects to next.
func (s *Server) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.abortLogin(c, bindingError(err), form)
		return
	}
	if form.Next == "" {
		form.Next = c.Query("next")
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(form.Email),
		Password:  form.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			err = newValidationError("email", "invalid_credentials", "enter a correct email and password")
		}
		s.abortLogin(c, err, form)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.Redirect(http.StatusSeeOther, session.SafeNext(form.Next, "/"))
}

func (s *Server) abortLogin(c *gin.Context, err error, form loginForm) {
	status, payload := mapError(err)
	if status != http.StatusBadRequest {
		AbortWithError(c, err)
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, formErrorResponse{
		Error: payload,
		Input: gin.H{"email": form.Email, "next": form.Next},
	})
}

// Logout revokes the session, if any, and always clears the cookie.
func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil && !isSessionError(err) {
			logger.FromContext(c.Request.Context()).Warn("logout failed", zap.Error(err))
		}
	}

	s.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// IssueToken godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Success  200  {object}  tokenResponse
// @Failure  401  {object}  errorResponse
// @Failure  429  {object}  errorResponse
// @Router   /auth/token/ [post]
func (s *Server) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindingError(err))
		return
	}

	user, err := s.authsvc.Verify(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	raw, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: raw,
		TokenType:   bearerScheme,
		ExpiresAt:   expiresAt,
	})
}

func isSessionError(err error) bool {
	return errors.Is(err, authdomain.ErrSessionNotFound) ||
		errors.Is(err, authdomain.ErrSessionExpired) ||
		errors.Is(err, authdomain.ErrSessionRevoked) ||
		errors.Is(err, authdomain.ErrInvalidSession)
}
