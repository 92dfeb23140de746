package session

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/heritage/internal/config"
)

const (
	DefaultCookieName = "_sid"
	LoginPath         = "/login/"
)

// Manager reads and writes the login session cookie. The cookie holds the
// raw session token; only its hash is stored server side.
type Manager struct {
	name   string
	secure bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{name: DefaultCookieName, secure: cfg.AuthCookieSecure}
}

func (m *Manager) CookieName() string {
	return m.name
}

// ReadToken returns the session token sent by the browser, if any.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(m.name)
	if err != nil {
		return "", false
	}
	token, err := url.QueryUnescape(cookie.Value)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// Set stores token until expiresAt.
func (m *Manager) Set(c *gin.Context, token string, expiresAt time.Time) {
	m.write(c, token, max(0, int(time.Until(expiresAt).Seconds())))
}

// Clear tells the browser to drop the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	m.write(c, "", -1)
}

func (m *Manager) write(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginURL is where an anonymous visitor of next is sent.
func LoginURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(SafeNext(next, "/"))
}

// SafeNext returns next when it is a same-site absolute path, otherwise fallback.
func SafeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return next
}
