package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/nats-io/nats.go"
)

const (
	natsConnectTimeout = 20 * time.Second
	natsRetryDelay     = 500 * time.Millisecond
)

type NATSBus struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	topic  string
	group  string
	logger ports.LoggerPort
	sub    *nats.Subscription
}

var _ ports.EventBus = (*NATSBus)(nil)

// ConnectNATS retries until the server is reachable, then makes sure the
// stream backing the topic exists.
func ConnectNATS(cfg *config.Bus, logger ports.LoggerPort) (*NATSBus, error) {
	deadline := time.Now().Add(natsConnectTimeout)
	var lastErr error
	for time.Now().Before(deadline) {
		b, err := connectNATS(cfg, logger)
		if err == nil {
			return b, nil
		}
		lastErr = err
		logger.Warn("Waiting for NATS", map[string]interface{}{
			"url":   cfg.URL,
			"error": err.Error(),
		})
		time.Sleep(natsRetryDelay)
	}
	return nil, fmt.Errorf("connect jetstream timeout after %s: %w", natsConnectTimeout, lastErr)
}

func connectNATS(cfg *config.Bus, logger ports.LoggerPort) (*NATSBus, error) {
	name := cfg.ClientID
	if name == "" {
		name = cfg.Group
	}
	conn, err := nats.Connect(cfg.URL, nats.Name(name))
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}
	if err := ensureStream(js, cfg.Topic); err != nil {
		_ = conn.Drain()
		conn.Close()
		return nil, err
	}
	return &NATSBus{
		conn:   conn,
		js:     js,
		topic:  cfg.Topic,
		group:  cfg.Group,
		logger: logger,
	}, nil
}

func streamName(topic string) string {
	name := strings.ToUpper(topic)
	return strings.NewReplacer("-", "_", ".", "_", "*", "_", ">", "_", "/", "_").Replace(name)
}

func ensureStream(js nats.JetStreamContext, topic string) error {
	name := streamName(topic)
	if _, err := js.StreamInfo(name); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			return err
		}
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:      name,
			Subjects:  []string{topic},
			Retention: nats.LimitsPolicy,
			Storage:   nats.FileStorage,
			Replicas:  1,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *NATSBus) Publish(ctx context.Context, event *domain.MaintenanceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	// The event id doubles as the JetStream dedup key.
	if _, err := b.js.Publish(b.topic, payload, nats.Context(ctx), nats.MsgId(event.EventID.String())); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Event, err)
	}
	return nil
}

func (b *NATSBus) Subscribe(ctx context.Context, handler ports.MessageHandler) error {
	sub, err := b.js.QueueSubscribe(b.topic, b.group, func(msg *nats.Msg) {
		switch deliver(ctx, handler, msg.Data, b.logger) {
		case settleTerm:
			_ = msg.Term()
		default:
			_ = msg.Ack()
		}
	}, nats.ManualAck(), nats.AckWait(ackWait), nats.DeliverNew())
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", b.topic, err)
	}
	b.sub = sub
	b.logger.Info("Listening for maintenance events", map[string]interface{}{
		"subject": sub.Subject,
		"queue":   b.group,
	})
	return nil
}

func (b *NATSBus) Close() error {
	if b == nil || b.conn == nil {
		return nil
	}
	err := b.conn.Drain()
	b.conn.Close()
	return err
}
