package services

import (
	"context"
	"errors"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/shopspring/decimal"
)

const publishTimeout = 5 * time.Second

type MaintenanceService struct {
	repo      ports.MaintenanceRepository
	vehicles  ports.VehicleExistenceChecker
	users     ports.UserDirectory
	publisher ports.EventPublisher
	logger    ports.LoggerPort
	metrics   ports.EventMetricsPort
	now       func() time.Time
}

var _ ports.MaintenanceService = (*MaintenanceService)(nil)

func NewMaintenanceService(
	repo ports.MaintenanceRepository,
	vehicles ports.VehicleExistenceChecker,
	users ports.UserDirectory,
	publisher ports.EventPublisher,
	logger ports.LoggerPort,
	metrics ports.EventMetricsPort,
) *MaintenanceService {
	return &MaintenanceService{
		repo:      repo,
		vehicles:  vehicles,
		users:     users,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *MaintenanceService) CreateMaintenance(ctx context.Context, in ports.CreateMaintenanceInput) (*domain.MaintenanceTask, error) {
	if in.VehicleID == nil || *in.VehicleID <= 0 {
		return nil, s.reject("vehicle_id is required")
	}
	if in.StartDate == nil {
		return nil, s.reject("start_date is required")
	}
	if !in.StartDate.After(s.now()) {
		return nil, s.reject("start_date must be in the future")
	}
	if in.EndDate == nil {
		return nil, s.reject("end_date is required")
	}
	if in.EndDate.Before(*in.StartDate) {
		return nil, s.reject("end_date must not be before start_date")
	}

	vehicleID := *in.VehicleID
	found, err := s.vehicles.VehicleExists(ctx, vehicleID)
	if err != nil {
		s.logger.Error("Vehicle existence check failed", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, asUpstream("vehicle", err)
	}
	if !found {
		s.logger.Warn("Maintenance references unknown vehicle", map[string]interface{}{
			"vehicle_id": vehicleID,
		})
		return nil, domain.NewError(domain.ErrNotFound, "vehicle %d not found", vehicleID)
	}

	created, err := s.repo.CreateMaintenance(ctx, &domain.MaintenanceTask{
		VehicleID:   vehicleID,
		MechanicID:  in.MechanicID,
		StartDate:   *in.StartDate,
		EndDate:     in.EndDate,
		Amount:      decimal.Zero,
		Description: in.Description,
		Status:      domain.StatusPending,
	})
	if err != nil {
		s.logger.Error("Failed to create maintenance", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicleID,
		})
		return nil, err
	}

	s.logger.Info("Maintenance created successfully", map[string]interface{}{
		"maintenance_id": created.ID,
		"vehicle_id":     created.VehicleID,
	})
	s.publish(ctx, domain.EventCreated, created)
	return created, nil
}

func (s *MaintenanceService) UpdateStatus(ctx context.Context, id int64, in ports.UpdateStatusInput) (*domain.MaintenanceTask, error) {
	next, ok := domain.ParseMaintenanceStatus(in.Status)
	if !ok {
		return nil, s.reject("invalid status %q: expected pending, confirmed, completed or cancelled", in.Status)
	}

	task, err := s.repo.GetMaintenanceByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get maintenance", map[string]interface{}{
			"error":          err.Error(),
			"maintenance_id": id,
		})
		return nil, err
	}

	if in.Amount != nil {
		if err := domain.ValidateAmount(*in.Amount); err != nil {
			s.logger.Warn("Maintenance validation failed", map[string]interface{}{
				"error":          err.Error(),
				"maintenance_id": id,
			})
			return nil, err
		}
	}
	if err := task.CheckTransition(next); err != nil {
		s.logger.Warn("Rejected status transition", map[string]interface{}{
			"maintenance_id": id,
			"from":           task.Status,
			"to":             next,
		})
		return nil, err
	}

	switch next {
	case domain.StatusConfirmed:
		mechanicID := task.EffectiveMechanic(in.MechanicID)
		if mechanicID == nil {
			return nil, s.reject("mechanic_id is required to confirm a maintenance")
		}
		if err := s.verifyMechanic(ctx, *mechanicID); err != nil {
			return nil, err
		}
		task.Amount = task.EffectiveAmount(in.Amount)
		task.MechanicID = mechanicID

	case domain.StatusCompleted:
		// Amount first: a missing amount is reported before any mechanic problem.
		amount := task.EffectiveAmount(in.Amount)
		if !amount.IsPositive() {
			return nil, s.reject("amount must be greater than zero to complete a maintenance")
		}
		mechanicID := task.EffectiveMechanic(in.MechanicID)
		if mechanicID == nil {
			return nil, s.reject("mechanic_id is required to complete a maintenance")
		}
		if err := s.verifyMechanic(ctx, *mechanicID); err != nil {
			return nil, err
		}
		task.Amount = amount
		task.MechanicID = mechanicID
	}

	previous := task.Status
	task.Status = next
	updated, err := s.repo.UpdateMaintenanceStatus(ctx, task, previous)
	if err != nil {
		s.logger.Error("Failed to update maintenance status", map[string]interface{}{
			"error":          err.Error(),
			"maintenance_id": id,
			"status":         next,
		})
		return nil, err
	}

	s.logger.Info("Maintenance status updated", map[string]interface{}{
		"maintenance_id": id,
		"from":           previous,
		"to":             next,
	})
	s.publish(ctx, domain.EventForStatus(next), updated)
	return updated, nil
}

func (s *MaintenanceService) GetMaintenance(ctx context.Context, id int64) (*domain.MaintenanceTask, error) {
	task, err := s.repo.GetMaintenanceByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get maintenance", map[string]interface{}{
			"error":          err.Error(),
			"maintenance_id": id,
		})
		return nil, err
	}
	return task, nil
}

func (s *MaintenanceService) ListMaintenances(ctx context.Context) ([]*domain.MaintenanceTask, error) {
	tasks, err := s.repo.ListMaintenances(ctx)
	if err != nil {
		s.logger.Error("Failed to list maintenances", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return tasks, nil
}

func (s *MaintenanceService) DeleteMaintenance(ctx context.Context, id int64) error {
	task, err := s.repo.GetMaintenanceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMaintenance(ctx, id); err != nil {
		s.logger.Error("Failed to delete maintenance", map[string]interface{}{
			"error":          err.Error(),
			"maintenance_id": id,
		})
		return err
	}

	s.logger.Info("Maintenance deleted successfully", map[string]interface{}{
		"maintenance_id": id,
	})
	s.publish(ctx, domain.EventDeleted, task)
	return nil
}

func (s *MaintenanceService) ListMechanics(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, asUpstream("user", err)
	}

	mechanics := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.IsMechanic() {
			mechanics = append(mechanics, u)
		}
	}
	return mechanics, nil
}

// verifyMechanic re-resolves the mechanic on every transition.
func (s *MaintenanceService) verifyMechanic(ctx context.Context, id int64) error {
	user, err := s.users.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("Mechanic not found", map[string]interface{}{
			"mechanic_id": id,
		})
		return domain.NewError(domain.ErrNotFound, "mechanic not found")
	}
	if err != nil {
		s.logger.Error("Mechanic lookup failed", map[string]interface{}{
			"error":       err.Error(),
			"mechanic_id": id,
		})
		return asUpstream("user", err)
	}
	if !user.IsMechanic() {
		return s.reject("user %d is not a mechanic", id)
	}
	return nil
}

// publish never fails the caller: the row is already committed.
func (s *MaintenanceService) publish(ctx context.Context, name domain.EventName, task *domain.MaintenanceTask) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := domain.NewMaintenanceEvent(name, task)
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.metrics.RecordEvent("published", string(name), "failed")
		s.logger.Error("Failed to publish maintenance event", map[string]interface{}{
			"error":          err.Error(),
			"event":          name,
			"event_id":       event.EventID.String(),
			"maintenance_id": task.ID,
		})
		return
	}
	s.metrics.RecordEvent("published", string(name), "ok")
	s.logger.Debug("Maintenance event published", map[string]interface{}{
		"event":          name,
		"event_id":       event.EventID.String(),
		"maintenance_id": task.ID,
	})
}

func (s *MaintenanceService) reject(format string, args ...interface{}) error {
	err := domain.NewError(domain.ErrValidation, format, args...)
	s.logger.Warn("Maintenance validation failed", map[string]interface{}{
		"error": err.Error(),
	})
	return err
}

// asUpstream keeps domain errors as they are and wraps raw transport failures.
func asUpstream(service string, err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.Upstream(service, err)
}
