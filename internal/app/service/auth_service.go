package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionRevoked     = errors.New("session has been revoked")
)

// SessionRevoker remembers logged-out token ids. Backed by Redis when configured.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevoker is used when no revocation store is configured; logout then only clears the cookie
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }
func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type AuthService interface {
	Login(email, password string) (*model.User, string, *util.Session, error)
	Logout(ctx context.Context, session *util.Session) error
	ValidateSession(ctx context.Context, token string) (*util.Session, error)
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	secret     string
	sessionTTL time.Duration
	revoker    SessionRevoker
}

func NewAuthService(userRepo repository.UserRepository, secret string, sessionTTL time.Duration, revoker SessionRevoker) AuthService {
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	return &authService{
		userRepo:   userRepo,
		secret:     secret,
		sessionTTL: sessionTTL,
		revoker:    revoker,
	}
}

// Login verifies the credentials and issues a signed session token. Unknown
// emails, accounts without a password and wrong passwords are indistinguishable.
func (s *authService) Login(email, password string) (*model.User, string, *util.Session, error) {
	email = strings.TrimSpace(email)
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	if email == "" || password == "" {
		util.BurnPasswordCheck(password)
		return nil, "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up user for login", err, nil)
			return nil, "", nil, err
		}
		util.BurnPasswordCheck(password)
		logger.Warn("Login failed", map[string]interface{}{
			"email": email,
		})
		return nil, "", nil, ErrInvalidCredentials
	}

	if user.PasswordHash == nil || *user.PasswordHash == "" {
		util.BurnPasswordCheck(password)
		logger.Warn("Login failed", map[string]interface{}{
			"email": email,
		})
		return nil, "", nil, ErrInvalidCredentials
	}

	if !util.VerifyPassword(*user.PasswordHash, password) {
		logger.Warn("Login failed", map[string]interface{}{
			"email": email,
		})
		return nil, "", nil, ErrInvalidCredentials
	}

	token, session, err := util.GenerateSessionToken(user.ID, user.Name, user.Email, string(user.Role), s.secret, s.sessionTTL)
	if err != nil {
		logger.Error("Failed to issue session token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, token, session, nil
}

// Logout revokes the session's token id for the rest of its lifetime
func (s *authService) Logout(ctx context.Context, session *util.Session) error {
	if session == nil || session.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, session.RemainingTTL()); err != nil {
		logger.Error("Failed to revoke session", err, map[string]interface{}{
			"user_id": session.UserID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": session.UserID,
	})
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*util.Session, error) {
	session, err := util.ValidateSessionToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return session, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, translateStoreError(err, ErrUserNotFound, "")
	}
	return user, nil
}
