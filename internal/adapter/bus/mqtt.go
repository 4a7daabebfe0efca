package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	mqttQoS            = byte(1)
	mqttConnectTimeout = 10 * time.Second
	mqttQuiesceMillis  = 250
)

type MQTTBus struct {
	client mqtt.Client
	topic  string
	logger ports.LoggerPort
}

var _ ports.EventBus = (*MQTTBus)(nil)

func ConnectMQTT(cfg *config.Bus, logger ports.LoggerPort) (*MQTTBus, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = cfg.Group + "-" + uuid.NewString()[:8]
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetOrderMatters(true).
		SetConnectTimeout(mqttConnectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("MQTT connection lost", map[string]interface{}{
				"error": err.Error(),
			})
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect mqtt %s: timeout", cfg.URL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", cfg.URL, err)
	}

	return &MQTTBus{client: client, topic: cfg.Topic, logger: logger}, nil
}

func (b *MQTTBus) Publish(ctx context.Context, event *domain.MaintenanceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return wait(ctx, b.client.Publish(b.topic, mqttQoS, false, payload), "publish "+string(event.Event)+" event")
}

func (b *MQTTBus) Subscribe(ctx context.Context, handler ports.MessageHandler) error {
	token := b.client.Subscribe(b.topic, mqttQoS, func(_ mqtt.Client, msg mqtt.Message) {
		// QoS 1 has no negative ack; undecodable payloads are simply dropped.
		deliver(ctx, handler, msg.Payload(), b.logger)
		msg.Ack()
	})
	if err := wait(ctx, token, "subscribe "+b.topic); err != nil {
		return err
	}
	b.logger.Info("Listening for maintenance events", map[string]interface{}{
		"topic": b.topic,
	})
	return nil
}

func (b *MQTTBus) Close() error {
	b.client.Disconnect(mqttQuiesceMillis)
	return nil
}

func wait(ctx context.Context, token mqtt.Token, op string) error {
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}
