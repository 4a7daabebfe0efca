package ports

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type UserService interface {
	CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	GetUser(ctx context.Context, identifier string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}
