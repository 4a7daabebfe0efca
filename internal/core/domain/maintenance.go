package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type MaintenanceStatus string

const (
	StatusPending   MaintenanceStatus = "pending"
	StatusConfirmed MaintenanceStatus = "confirmed"
	StatusCompleted MaintenanceStatus = "completed"
	StatusCancelled MaintenanceStatus = "cancelled"
)

// swagger:model domain.MaintenanceTask
type MaintenanceTask struct {
	ID          int64             `json:"id"`
	VehicleID   int64             `json:"vehicle_id"`
	MechanicID  *int64            `json:"mechanic_id"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func ParseMaintenanceStatus(s string) (MaintenanceStatus, bool) {
	switch status := MaintenanceStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is allowed.
func (s MaintenanceStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CheckTransition validates the edge from the current status to next.
// Preconditions on amount and mechanic are checked by the caller.
func (m *MaintenanceTask) CheckTransition(next MaintenanceStatus) error {
	if m.Status.IsTerminal() {
		return NewError(ErrValidation, "cannot change status of a %s maintenance to %s", m.Status, next)
	}
	switch next {
	case StatusConfirmed:
		if m.Status == StatusPending {
			return nil
		}
	case StatusCompleted, StatusCancelled:
		return nil
	}
	return NewError(ErrValidation, "invalid status transition from %s to %s", m.Status, next)
}

// Amounts are stored as NUMERIC(12, 2).
const AmountScale = 2

// MaxAmount is the smallest amount the column cannot hold.
var MaxAmount = decimal.New(1, 10)

// ValidateAmount rejects amounts the store would round or overflow.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewError(ErrValidation, "amount must not be negative")
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return NewError(ErrValidation, "amount must have at most %d decimal places", AmountScale)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return NewError(ErrValidation, "amount must be less than %s", MaxAmount.String())
	}
	return nil
}

// EffectiveAmount prefers the amount carried by the request over the stored one.
func (m *MaintenanceTask) EffectiveAmount(requested *decimal.Decimal) decimal.Decimal {
	if requested != nil {
		return *requested
	}
	return m.Amount
}

// EffectiveMechanic prefers the mechanic carried by the request over the stored one.
func (m *MaintenanceTask) EffectiveMechanic(requested *int64) *int64 {
	if requested != nil {
		return requested
	}
	return m.MechanicID
}

func (m *MaintenanceTask) String() string {
	return fmt.Sprintf("maintenance %d (%s)", m.ID, m.Status)
}
