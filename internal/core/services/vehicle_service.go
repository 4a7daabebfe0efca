package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/go-playground/validator/v10"
)

const vehicleCacheTTL = 15 * time.Minute

type VehicleService struct {
	repo     ports.VehicleRepository
	owners   ports.UserExistenceChecker
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
	now      func() time.Time
}

var _ ports.VehicleService = (*VehicleService)(nil)

func NewVehicleService(
	repo ports.VehicleRepository,
	owners ports.UserExistenceChecker,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *VehicleService {
	return &VehicleService{
		repo:     repo,
		owners:   owners,
		logger:   logger,
		validate: validate,
		cache:    cache,
		now:      time.Now,
	}
}

func vehicleCacheKey(id int64) string {
	return fmt.Sprintf("vehicle:%d", id)
}

func (s *VehicleService) check(vehicle *domain.Vehicle) error {
	if err := s.validate.Struct(vehicle); err != nil {
		s.logger.Error("Vehicle validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.NewError(domain.ErrValidation, "validation error: %v", err)
	}
	if year := s.now().Year(); vehicle.Annee > year {
		return domain.NewError(domain.ErrValidation, "annee must be between 1900 and %d", year)
	}
	return nil
}

func (s *VehicleService) checkOwner(ctx context.Context, ownerID int64) error {
	found, err := s.owners.UserExists(ctx, ownerID)
	if err != nil {
		s.logger.Error("Owner lookup failed", map[string]interface{}{
			"error":           err.Error(),
			"proprietaire_id": ownerID,
		})
		return asUpstream("user", err)
	}
	if !found {
		return domain.NewError(domain.ErrNotFound, "owner %d not found", ownerID)
	}
	return nil
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.check(vehicle); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, vehicle.ProprietaireID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateVehicle(ctx, vehicle)
	if err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error":               err.Error(),
			"num_immatriculation": vehicle.NumImmatriculation,
		})
		return nil, err
	}

	s.logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id":      created.ID,
		"proprietaire_id": created.ProprietaireID,
	})
	return created, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	cacheKey := vehicleCacheKey(id)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var vehicle domain.Vehicle
		if err := json.Unmarshal(cached, &vehicle); err == nil {
			s.logger.Debug("Vehicle found in cache", map[string]interface{}{
				"vehicle_id": id,
			})
			return &vehicle, nil
		}
	}

	vehicle, err := s.repo.GetVehicleByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return nil, err
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		s.logger.Warn("Failed to marshal vehicle for cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
	} else if err := s.cache.Set(cacheKey, data, vehicleCacheTTL); err != nil {
		s.logger.Warn("Failed to cache vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
	}
	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	vehicles, err := s.repo.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle replaces the stored vehicle; the owner is re-checked only when it changes.
func (s *VehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	current, err := s.repo.GetVehicleByID(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(vehicle); err != nil {
		return nil, err
	}
	if vehicle.ProprietaireID != current.ProprietaireID {
		if err := s.checkOwner(ctx, vehicle.ProprietaireID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateVehicle(ctx, vehicle)
	if err != nil {
		s.logger.Error("Failed to update vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": vehicle.ID,
		})
		return nil, err
	}
	s.invalidate(vehicle.ID)
	return updated, nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		s.logger.Error("Failed to delete vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *VehicleService) invalidate(id int64) {
	if err := s.cache.Delete(vehicleCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate vehicle cache", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
	}
}
