package ports

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type MailerPort interface {
	Send(ctx context.Context, email *domain.Email) error
}
