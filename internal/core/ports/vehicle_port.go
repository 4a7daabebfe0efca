package ports

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}

type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}
