package service

import (
	"context"
	"errors"
	"time"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"github.com/minhasantafonte/santafonte-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrWrongTokenType     = errors.New("wrong token type")
)

type AuthService interface {
	Login(email, password string) (*model.AdminUser, *util.TokenPair, error)
	Logout(ctx context.Context, tokens ...string) error
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	GetAdminByID(id uint) (*model.AdminUser, error)
	ChangePassword(id uint, currentPassword, newPassword string) error
	EnsureAdmin(email, password string) (bool, error)
}

type authService struct {
	userRepo      repository.AdminUserRepository
	blacklist     TokenBlacklist
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.AdminUserRepository,
	blacklist TokenBlacklist,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		blacklist:     blacklist,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Login(email, password string) (*model.AdminUser, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordAuthAttempt("invalid")
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		metrics.RecordAuthAttempt("invalid")
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
			"email":   email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		logger.Warn("Failed to record last login", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	} else {
		user.LastLoginAt = &now
	}

	metrics.RecordAuthAttempt("success")
	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, tokens, nil
}

// Logout revokes every given token for the rest of its lifetime. Tokens
// that no longer validate are skipped.
func (s *authService) Logout(ctx context.Context, tokens ...string) error {
	for _, token := range tokens {
		if token == "" {
			continue
		}
		claims, err := util.ValidateToken(token, s.jwtSecret)
		if err != nil {
			continue
		}

		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			continue
		}
		if err := s.blacklist.Revoke(ctx, token, ttl); err != nil {
			logger.Error("Failed to revoke token", err, map[string]interface{}{
				"user_id": claims.UserID,
			})
			return err
		}
	}

	logger.Info("User logged out", nil)
	return nil
}

// Refresh exchanges a refresh token for a new pair and revokes the old one.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != util.TokenTypeRefresh {
		return nil, ErrWrongTokenType
	}

	revoked, err := s.blacklist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := s.GetAdminByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	tokens, err := util.GenerateTokenPair(user.ID, user.Email, s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		return nil, err
	}
	if err := s.blacklist.Revoke(ctx, refreshToken, time.Until(claims.ExpiresAt.Time)); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *authService) GetAdminByID(id uint) (*model.AdminUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ChangePassword(id uint, currentPassword, newPassword string) error {
	user, err := s.GetAdminByID(id)
	if err != nil {
		return err
	}
	if !util.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := util.CheckPasswordStrength(newPassword); err != nil {
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(id, hash); err != nil {
		logger.Error("Failed to update password", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}

	logger.Info("Password changed", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

// EnsureAdmin creates the back-office account when none exists yet. It
// reports whether an account was created.
func (s *authService) EnsureAdmin(email, password string) (bool, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := util.CheckPasswordStrength(password); err != nil {
		return false, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return false, err
	}
	user := &model.AdminUser{Email: email, PasswordHash: hash, Name: "Administrador"}
	if err := s.userRepo.Create(user); err != nil {
		return false, err
	}

	logger.Info("Admin account created", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return true, nil
}
