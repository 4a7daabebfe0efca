package bus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
)

// New connects the driver selected by BUS_DRIVER.
func New(cfg *config.Bus, logger ports.LoggerPort) (ports.EventBus, error) {
	switch cfg.Driver {
	case "", "nats":
		b, err := ConnectNATS(cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "mqtt":
		b, err := ConnectMQTT(cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown bus driver %q", cfg.Driver)
	}
}

const (
	// handleTimeout bounds one message: directory lookups and mail sends included.
	handleTimeout = 90 * time.Second
	// ackWait must outlast handleTimeout or JetStream redelivers a message still being handled.
	ackWait = 2 * time.Minute
)

type settlement int

const (
	settleAck settlement = iota
	settleTerm
)

// deliver runs the handler and decides how the broker should settle the message.
// Failures other than an undecodable payload are already logged by the handler
// and are not redelivered.
func deliver(ctx context.Context, handler ports.MessageHandler, payload []byte, logger ports.LoggerPort) settlement {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	err := handler(ctx, payload)
	if err == nil {
		return settleAck
	}
	if errors.Is(err, domain.ErrInvalidEventPayload) {
		logger.Warn("Discarding invalid event payload", map[string]interface{}{
			"error": err.Error(),
		})
		return settleTerm
	}
	logger.Error("Event handling failed", map[string]interface{}{
		"error": err.Error(),
	})
	return settleAck
}
