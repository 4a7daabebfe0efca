package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "token:revoked:"

// RevocationStore keeps revoked token ids as keys that expire with the token.
type RevocationStore struct {
	client *redis.Client
}

var _ ports.RevocationStore = (*RevocationStore)(nil)

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
