package domain

import (
	"time"

	"github.com/google/uuid"
)

type TokenPayload struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Role      UserRole  `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining is how long the token stays valid after now.
func (p *TokenPayload) Remaining(now time.Time) time.Duration {
	return p.ExpiresAt.Sub(now)
}
