package ports

import (
	"context"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type TokenService interface {
	CreateToken(user *domain.User) (string, *domain.TokenPayload, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}

// RevocationStore remembers logged-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Signup(ctx context.Context, user *domain.User, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*domain.TokenPayload, error)
}
