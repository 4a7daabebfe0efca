package ports

import (
	"context"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/shopspring/decimal"
)

type MaintenanceRepository interface {
	CreateMaintenance(ctx context.Context, task *domain.MaintenanceTask) (*domain.MaintenanceTask, error)
	GetMaintenanceByID(ctx context.Context, id int64) (*domain.MaintenanceTask, error)
	ListMaintenances(ctx context.Context) ([]*domain.MaintenanceTask, error)
	// UpdateMaintenanceStatus persists status, amount and mechanic only if the
	// row is still in the expected status.
	UpdateMaintenanceStatus(ctx context.Context, task *domain.MaintenanceTask, expected domain.MaintenanceStatus) (*domain.MaintenanceTask, error)
	DeleteMaintenance(ctx context.Context, id int64) error
}

type CreateMaintenanceInput struct {
	VehicleID   *int64
	MechanicID  *int64
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
}

type UpdateStatusInput struct {
	Status     string
	Amount     *decimal.Decimal
	MechanicID *int64
}

type MaintenanceService interface {
	CreateMaintenance(ctx context.Context, in CreateMaintenanceInput) (*domain.MaintenanceTask, error)
	UpdateStatus(ctx context.Context, id int64, in UpdateStatusInput) (*domain.MaintenanceTask, error)
	GetMaintenance(ctx context.Context, id int64) (*domain.MaintenanceTask, error)
	ListMaintenances(ctx context.Context) ([]*domain.MaintenanceTask, error)
	DeleteMaintenance(ctx context.Context, id int64) error
	ListMechanics(ctx context.Context) ([]*domain.User, error)
}
