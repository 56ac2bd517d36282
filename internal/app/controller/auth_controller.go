package controller

import (
	"net/http"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	apperrors "github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/doorhan-crimea/doorhan-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SessionCookie describes the HttpOnly cookie that carries the admin session
type SessionCookie struct {
	Name   string
	Secure bool
}

type AuthController struct {
	authService service.AuthService
	cookie      SessionCookie
}

func NewAuthController(authService service.AuthService, cookie SessionCookie) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ctrl *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.cookie.Name, value, maxAge, "/", "", ctrl.cookie.Secure, true)
}

// Login checks the credentials, sets the session cookie and returns the token
// POST /api/session
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, session, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}

	ctrl.setCookie(c, token, int(time.Until(session.ExpiresAt).Seconds()))
	log.Info("Admin session opened", map[string]interface{}{
		"user_id": user.ID,
	})
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"token":     token,
		"expiresAt": session.ExpiresAt,
	})
}

// Logout revokes the presented session, if any, and clears the cookie
// DELETE /api/session
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.setCookie(c, "", -1)

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), session); err != nil {
		apperrors.InternalError(c, "Не удалось завершить сессию")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the signed-in administrator
// GET /api/admin/me
func (ctrl *AuthController) Me(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(session.UserID)
	if err != nil {
		respondServiceError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"expiresAt": session.ExpiresAt,
	})
}
