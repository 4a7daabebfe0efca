package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTTokenService struct {
	secretKey []byte
	duration  time.Duration
	logger    ports.LoggerPort
	now       func() time.Time
}

var _ ports.TokenService = (*JWTTokenService)(nil)

type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewJWTTokenService(secretKey string, duration time.Duration, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey: []byte(secretKey),
		duration:  duration,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateToken signs an HS256 token carrying a fresh jti.
func (j *JWTTokenService) CreateToken(user *domain.User) (string, *domain.TokenPayload, error) {
	issuedAt := j.now().UTC().Truncate(time.Second)
	payload := &domain.TokenPayload{
		ID:        uuid.New(),
		UserID:    user.ID,
		Role:      user.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(j.duration),
	}

	claims := tokenClaims{
		UserID: payload.UserID,
		Role:   string(payload.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        payload.ID.String(),
			Subject:   fmt.Sprint(payload.UserID),
			IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(payload.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		j.logger.Error("Failed to sign jwt", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return "", nil, err
	}
	return token, payload, nil
}

func (j *JWTTokenService) VerifyToken(token string) (*domain.TokenPayload, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		j.logger.Debug("Failed to parse jwt", map[string]interface{}{
			"error":  err.Error(),
			"method": "VerifyToken",
		})
		return nil, err
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, errors.New("invalid token id")
	}

	role := domain.UserRole(claims.Role)
	if !role.Valid() {
		j.logger.Warn("Invalid role in token", map[string]interface{}{
			"role":   claims.Role,
			"method": "VerifyToken",
		})
		return nil, errors.New("invalid role value")
	}

	payload := &domain.TokenPayload{
		ID:     id,
		UserID: claims.UserID,
		Role:   role,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}
