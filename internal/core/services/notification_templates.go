package services

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/garagehub/garage_services/internal/core/domain"
)

const mailSignature = "\n\nBest regards,\nMaintenance Team"

type mailTemplate struct {
	subject string
	body    *template.Template
}

func newMailTemplate(name, subject, body string) mailTemplate {
	return mailTemplate{
		subject: subject,
		body:    template.Must(template.New(name).Parse(body + mailSignature)),
	}
}

var ownerTemplates = map[domain.EventName]mailTemplate{
	domain.EventCreated: newMailTemplate("created", "Maintenance Scheduled",
		"Hello {{.Recipient}},\n\nYour vehicle ({{.Vehicle}}) is scheduled for maintenance from {{.Start}} to {{.End}}. "+
			"Description: {{.Description}}\n\nPlease ensure the vehicle is available for servicing."),
	domain.EventConfirmed: newMailTemplate("confirmed", "Maintenance Confirmed",
		"Hello {{.Recipient}},\n\nWe are happy to inform you that the scheduled maintenance for your vehicle ({{.Vehicle}}) "+
			"has been confirmed. Please contact us for further assistance."),
	domain.EventCompleted: newMailTemplate("completed", "Maintenance Completed",
		"Hello {{.Recipient}},\n\nThe maintenance task for your vehicle ({{.Vehicle}}) has been successfully completed. "+
			"The total cost of the maintenance is {{.Amount}} XOF.\n\nThank you for your cooperation."),
	domain.EventCancelled: newMailTemplate("cancelled", "Maintenance Cancelled",
		"Hello {{.Recipient}},\n\nWe regret to inform you that the scheduled maintenance for your vehicle ({{.Vehicle}}) "+
			"has been cancelled. Please contact us for further assistance."),
}

var mechanicTemplate = newMailTemplate("assignment", "Maintenance Assignment - Confirmed",
	"Hello {{.Recipient}},\n\nYou have been assigned to a maintenance task (ID: {{.ID}}) for the vehicle ({{.Vehicle}}). "+
		"The maintenance period is from {{.Start}} to {{.End}}. Description: {{.Description}}")

const mailDateLayout = "2006-01-02 15:04"

type mailData struct {
	Recipient   string
	Vehicle     string
	ID          int64
	Start       string
	End         string
	Description string
	Amount      string
}

func newMailData(recipient *domain.User, vehicle *domain.Vehicle, task *domain.MaintenanceTask) mailData {
	end := "an unspecified date"
	if task.EndDate != nil {
		end = task.EndDate.Format(mailDateLayout)
	}
	return mailData{
		Recipient:   recipient.FullName(),
		Vehicle:     fmt.Sprintf("%s, %d", vehicle.Label(), vehicle.Annee),
		ID:          task.ID,
		Start:       task.StartDate.Format(mailDateLayout),
		End:         end,
		Description: task.Description,
		Amount:      task.Amount.String(),
	}
}

func (t mailTemplate) render(to string, data mailData) (*domain.Email, error) {
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s mail: %w", t.body.Name(), err)
	}
	return &domain.Email{To: to, Subject: t.subject, Body: buf.String()}, nil
}
