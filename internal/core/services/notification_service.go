package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
)

type NotificationService struct {
	vehicles ports.VehicleDirectory
	users    ports.UserDirectory
	mailer   ports.MailerPort
	logger   ports.LoggerPort
	metrics  ports.EventMetricsPort
}

var _ ports.NotificationService = (*NotificationService)(nil)

func NewNotificationService(
	vehicles ports.VehicleDirectory,
	users ports.UserDirectory,
	mailer ports.MailerPort,
	logger ports.LoggerPort,
	metrics ports.EventMetricsPort,
) *NotificationService {
	return &NotificationService{
		vehicles: vehicles,
		users:    users,
		mailer:   mailer,
		logger:   logger,
		metrics:  metrics,
	}
}

// HandleMessage decodes one bus message and processes it.
func (s *NotificationService) HandleMessage(ctx context.Context, payload []byte) error {
	var event domain.MaintenanceEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.metrics.RecordEvent("consumed", "unknown", "invalid")
		return fmt.Errorf("%w: %v", domain.ErrInvalidEventPayload, err)
	}
	if event.Maintenance == nil {
		s.metrics.RecordEvent("consumed", string(event.Event), "invalid")
		return fmt.Errorf("%w: missing maintenance", domain.ErrInvalidEventPayload)
	}
	return s.HandleEvent(ctx, &event)
}

// HandleEvent mails the vehicle owner, and on confirmation the mechanic too.
// Any failure aborts this event only.
func (s *NotificationService) HandleEvent(ctx context.Context, event *domain.MaintenanceEvent) error {
	task := event.Maintenance
	fields := map[string]interface{}{
		"event":          event.Event,
		"event_id":       event.EventID.String(),
		"maintenance_id": task.ID,
	}

	tmpl, ok := ownerTemplates[event.Event]
	if !ok {
		s.logger.Warn("Unrecognized event type, no notification sent", fields)
		s.metrics.RecordEvent("consumed", string(event.Event), "ignored")
		return nil
	}

	if err := s.notify(ctx, event, tmpl); err != nil {
		fields["error"] = err.Error()
		s.logger.Error("Failed to send maintenance notification", fields)
		s.metrics.RecordEvent("consumed", string(event.Event), "failed")
		return err
	}

	s.metrics.RecordEvent("consumed", string(event.Event), "ok")
	return nil
}

func (s *NotificationService) notify(ctx context.Context, event *domain.MaintenanceEvent, tmpl mailTemplate) error {
	task := event.Maintenance

	vehicle, err := s.vehicles.GetVehicle(ctx, task.VehicleID)
	if err != nil {
		return fmt.Errorf("resolve vehicle %d: %w", task.VehicleID, err)
	}
	owner, err := s.users.GetUser(ctx, vehicle.ProprietaireID)
	if err != nil {
		return fmt.Errorf("resolve owner %d: %w", vehicle.ProprietaireID, err)
	}

	email, err := tmpl.render(owner.Email, newMailData(owner, vehicle, task))
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return err
	}
	s.logger.Info("Notification email sent to vehicle owner", map[string]interface{}{
		"event":          event.Event,
		"maintenance_id": task.ID,
		"to":             owner.Email,
	})

	if event.Event != domain.EventConfirmed {
		return nil
	}
	if task.MechanicID == nil {
		s.logger.Warn("Confirmed maintenance without mechanic", map[string]interface{}{
			"maintenance_id": task.ID,
		})
		return nil
	}

	mechanic, err := s.users.GetUser(ctx, *task.MechanicID)
	if err != nil {
		return fmt.Errorf("resolve mechanic %d: %w", *task.MechanicID, err)
	}
	email, err = mechanicTemplate.render(mechanic.Email, newMailData(mechanic, vehicle, task))
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, email); err != nil {
		return err
	}
	s.logger.Info("Assignment email sent to mechanic", map[string]interface{}{
		"maintenance_id": task.ID,
		"to":             mechanic.Email,
	})
	return nil
}
