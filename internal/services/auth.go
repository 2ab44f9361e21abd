package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pawstails/internal/logger"
	"pawstails/internal/utils"
)

// AuthService authenticates the single administrator configured through
// ADMIN_USERNAME and ADMIN_PASSWORD and issues bearer tokens.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       string
	ttl          time.Duration
}

// NewAuthService hashes password once at startup. An empty password disables
// login entirely.
func NewAuthService(username, password, secret string, ttl time.Duration) (*AuthService, error) {
	s := &AuthService{username: username, secret: secret, ttl: ttl}
	if password != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		s.passwordHash = hash
	}
	return s, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	log := logger.WithCtx(ctx)

	if s.passwordHash == nil {
		log.Warn("Login attempted while admin password is not configured")
		return "", time.Time{}, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		log.Warn("Invalid login", zap.String("username", username))
		return "", time.Time{}, ErrInvalidCredentials
	}

	expires := time.Now().Add(s.ttl)
	token, err := utils.GenerateToken(s.secret, s.username, s.ttl)
	if err != nil {
		log.Error("Token signing failed", zap.Error(err))
		return "", time.Time{}, err
	}

	log.Info("Admin logged in", zap.String("username", username))
	return token, expires, nil
}

// Verify returns the claims of a valid token.
func (s *AuthService) Verify(token string) (*utils.Claims, error) {
	claims, err := utils.ParseToken(s.secret, token)
	if err != nil {
		return nil, errors.Join(ErrInvalidCredentials, err)
	}
	return claims, nil
}
