package services

import (
	"context"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
)

type AuthService struct {
	accounts ports.UserAccounts
	tokens   ports.TokenService
	revoked  ports.RevocationStore
	logger   ports.LoggerPort
	now      func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	accounts ports.UserAccounts,
	tokens ports.TokenService,
	revoked ports.RevocationStore,
	logger ports.LoggerPort,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		revoked:  revoked,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.NewError(domain.ErrValidation, "email and password are required")
	}

	user, err := s.accounts.VerifyCredentials(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return "", nil, asUpstream("user", err)
	}
	return s.issue(user)
}

func (s *AuthService) Signup(ctx context.Context, user *domain.User, password string) (string, *domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleClient
	}
	created, err := s.accounts.RegisterUser(ctx, user, password)
	if err != nil {
		s.logger.Warn("Signup failed", map[string]interface{}{
			"email": user.Email,
			"error": err.Error(),
		})
		return "", nil, asUpstream("user", err)
	}
	return s.issue(created)
}

// Logout revokes the token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	payload, err := s.tokens.VerifyToken(token)
	if err != nil {
		return domain.NewError(domain.ErrUnauthorized, "invalid token")
	}
	if err := s.revoked.Revoke(ctx, payload.ID.String(), payload.Remaining(s.now())); err != nil {
		s.logger.Error("Failed to revoke token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": payload.UserID,
		})
		return err
	}

	s.logger.Info("User logged out", map[string]interface{}{
		"user_id": payload.UserID,
	})
	return nil
}

func (s *AuthService) Verify(ctx context.Context, token string) (*domain.TokenPayload, error) {
	payload, err := s.tokens.VerifyToken(token)
	if err != nil {
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid token")
	}
	revoked, err := s.revoked.IsRevoked(ctx, payload.ID.String())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.NewError(domain.ErrUnauthorized, "token has been revoked")
	}
	return payload, nil
}

func (s *AuthService) issue(user *domain.User) (string, *domain.User, error) {
	token, payload, err := s.tokens.CreateToken(user)
	if err != nil {
		s.logger.Error("Failed to create token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return "", nil, err
	}
	s.logger.Info("Token issued", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": payload.ExpiresAt,
	})
	return token, user, nil
}
