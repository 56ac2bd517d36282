package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	"github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// SessionKey holds the *util.Session of an authenticated request
const SessionKey = "session"

// SessionChecker validates a session token, including revocation
type SessionChecker interface {
	ValidateSession(ctx context.Context, token string) (*util.Session, error)
}

type AuthMiddleware struct {
	cookieName string
	checker    SessionChecker
}

func NewAuthMiddleware(cookieName string, checker SessionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		cookieName: cookieName,
		checker:    checker,
	}
}

// CookieName is the name of the session cookie set on login
func (m *AuthMiddleware) CookieName() string {
	return m.cookieName
}

// tokenFromRequest looks at the session cookie, then the Authorization header,
// then the token query parameter used by websocket clients.
func (m *AuthMiddleware) tokenFromRequest(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

// RequireSession rejects requests without a valid, unrevoked session
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := m.tokenFromRequest(c)
		if !ok {
			log.Warn("Missing session", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		session, err := m.checker.ValidateSession(c.Request.Context(), token)
		if err != nil {
			log.Warn("Session validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			switch {
			case stderrors.Is(err, util.ErrExpiredToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Сессия истекла, войдите снова")
			case stderrors.Is(err, service.ErrSessionRevoked):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Сессия завершена, войдите снова")
			case stderrors.Is(err, util.ErrInvalidToken):
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Недействительная сессия")
			default:
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		log.Debug("Session accepted", map[string]interface{}{
			"user_id": session.UserID,
			"role":    session.Role,
		})
		c.Next()
	}
}

// OptionalSession stores the session when a valid one is presented and
// otherwise lets the request through untouched
func (m *AuthMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.tokenFromRequest(c)
		if ok {
			if session, err := m.checker.ValidateSession(c.Request.Context(), token); err == nil {
				c.Set(SessionKey, session)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireSession
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		session, ok := GetSession(c)
		if !ok {
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, r := range roles {
			if session.Role == r {
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        session.UserID,
			"user_role":      session.Role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Доступ только для администраторов")
		c.Abort()
	}
}

// GetSession extracts the session stored by RequireSession
func GetSession(c *gin.Context) (*util.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*util.Session)
	return session, ok
}

// GetUserID extracts the authenticated user id from context
func GetUserID(c *gin.Context) (uint, bool) {
	session, ok := GetSession(c)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}
