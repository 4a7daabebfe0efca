package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/gin-gonic/gin"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "bearer"
	authorizationPayloadKey = "authorization_payload"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	fields := strings.Fields(c.GetHeader(authorizationHeaderKey))
	if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationTypeBearer {
		return "", false
	}
	return fields[1], true
}

// AuthMiddleware verifies the bearer token and stores its payload on the context.
// revoked may be nil when no shared revocation store is available.
func AuthMiddleware(tokenService ports.TokenService, revoked ports.RevocationStore, logger ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header is missing or malformed")
			return
		}

		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), payload.ID.String())
			if err != nil {
				logger.Error("Failed to check token revocation", map[string]interface{}{
					"error":   err.Error(),
					"user_id": payload.UserID,
				})
			} else if isRevoked {
				newErrorResponse(c, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}

func requestLogger(logger ports.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("Request failed", fields)
			return
		}
		logger.Debug("Request handled", fields)
	}
}

// recoverPanic logs panics through the service logger and answers a JSON 500.
func recoverPanic(logger ports.LoggerPort) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered", map[string]interface{}{
			"panic":  fmt.Sprint(recovered),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	})
}
