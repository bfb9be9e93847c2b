package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/repository"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

const invalidCredentials = "Invalid credentials"

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// VerifyCredentials resolves username/password to an Identity. An unknown username
// and a wrong password fail identically.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotAuthenticated(invalidCredentials)
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewNotAuthenticated(invalidCredentials)
	}
	return &domain.Identity{ID: user.ID, Username: user.Username}, nil
}

// Login verifies the credentials and issues a bearer token for the identity.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	var missing []string
	if strings.TrimSpace(username) == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("username and password are required", map[string]any{"missing": missing})
	}

	identity, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, err
	}

	value, expiresAt, err := s.tokens.Issue(identity.ID, identity.Username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &domain.Token{
		Value:     value,
		SubjectID: identity.ID,
		Username:  identity.Username,
		IssuedAt:  expiresAt.Add(-s.tokens.TTL()),
		ExpiresAt: expiresAt,
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
