package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	userCacheTTL      = 15 * time.Minute
	minPasswordLength = 6
)

type UserService struct {
	repo     ports.UserRepository
	logger   ports.LoggerPort
	validate *validator.Validate
	cache    ports.CachePort
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(
	repo ports.UserRepository,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
) *UserService {
	return &UserService{
		repo:     repo,
		logger:   logger,
		validate: validate,
		cache:    cache,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *UserService) CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if err := s.validate.Struct(user); err != nil {
		s.logger.Error("User validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, domain.NewError(domain.ErrValidation, "validation error: %v", err)
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrValidation, "password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user", map[string]interface{}{
			"error": err.Error(),
			"email": user.Email,
		})
		return nil, err
	}

	s.logger.Info("User created successfully", map[string]interface{}{
		"user_id": created.ID,
		"role":    created.Role,
	})
	return created, nil
}

// GetUser looks the user up by email when the identifier contains '@', by id otherwise.
func (s *UserService) GetUser(ctx context.Context, identifier string) (*domain.User, error) {
	if strings.Contains(identifier, "@") {
		return s.repo.GetUserByEmail(ctx, identifier)
	}

	id, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.NewError(domain.ErrValidation, "invalid user identifier %q", identifier)
	}

	cacheKey := userCacheKey(id)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var user domain.User
		if err := json.Unmarshal(cached, &user); err == nil {
			s.logger.Debug("User found in cache", map[string]interface{}{
				"user_id": id,
			})
			return &user, nil
		}
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(user); err == nil {
		if err := s.cache.Set(cacheKey, data, userCacheTTL); err != nil {
			s.logger.Warn("Failed to cache user", map[string]interface{}{
				"error":   err.Error(),
				"user_id": id,
			})
		}
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return users, nil
}

// UpdateUser applies the non-empty fields of user.
func (s *UserService) UpdateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Role != "" && !user.Role.Valid() {
		return nil, domain.NewError(domain.ErrValidation, "role must be client or mecanicien")
	}
	if user.Email != "" {
		if err := s.validate.Var(user.Email, "email"); err != nil {
			return nil, domain.NewError(domain.ErrValidation, "invalid email address")
		}
	}
	if password != "" {
		if len(password) < minPasswordLength {
			return nil, domain.NewError(domain.ErrValidation, "password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return nil, err
	}
	s.invalidate(user.ID)

	s.logger.Info("User updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		s.logger.Error("Failed to delete user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
		return err
	}
	s.invalidate(id)

	s.logger.Info("User deleted successfully", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("Invalid password attempt", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, domain.NewError(domain.ErrUnauthorized, "invalid credentials")
	}
	return user, nil
}

func (s *UserService) invalidate(id int64) {
	if err := s.cache.Delete(userCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate user cache", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id,
		})
	}
}
