package ports

import (
	"context"

	"github.com/garagehub/garage_services/internal/core/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *domain.MaintenanceEvent) error
}

// MessageHandler processes one raw bus message. Returning
// domain.ErrInvalidEventPayload drops the message for good.
type MessageHandler func(ctx context.Context, payload []byte) error

type EventSubscriber interface {
	Subscribe(ctx context.Context, handler MessageHandler) error
}

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
}

type NotificationService interface {
	HandleMessage(ctx context.Context, payload []byte) error
	HandleEvent(ctx context.Context, event *domain.MaintenanceEvent) error
}
