package ports

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
)

// UserDirectory reads users owned by the user service. Lookups of unknown ids
// fail with domain.ErrNotFound, transport failures with domain.ErrUpstreamUnavailable.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// UserAccounts is the part of the user service the auth service relies on.
type UserAccounts interface {
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
	RegisterUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
}

type VehicleDirectory interface {
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// VehicleExistenceChecker answers false for unknown vehicles and errors only
// when the registry cannot be reached.
type VehicleExistenceChecker interface {
	VehicleExists(ctx context.Context, id int64) (bool, error)
}

// UserExistenceChecker is the same capability for users.
type UserExistenceChecker interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}
