package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type maintenanceFixture struct {
	svc       *MaintenanceService
	repo      *memoryMaintenanceRepo
	dir       *fakeDirectory
	publisher *recordingPublisher
	metrics   *fakeMetrics
}

func newMaintenanceFixture() *maintenanceFixture {
	f := &maintenanceFixture{
		repo:      newMemoryMaintenanceRepo(),
		dir:       newFakeDirectory(),
		publisher: &recordingPublisher{},
		metrics:   &fakeMetrics{},
	}
	f.svc = NewMaintenanceService(f.repo, f.dir, f.dir, f.publisher, nopLogger{}, f.metrics)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (f *maintenanceFixture) create(t *testing.T) *domain.MaintenanceTask {
	t.Helper()
	start := testNow.Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)
	task, err := f.svc.CreateMaintenance(context.Background(), ports.CreateMaintenanceInput{
		VehicleID:   int64Ptr(1),
		StartDate:   &start,
		EndDate:     &end,
		Description: "Vidange",
	})
	require.NoError(t, err)
	return task
}

func TestCreateMaintenance(t *testing.T) {
	f := newMaintenanceFixture()

	task := f.create(t)

	assert.Equal(t, domain.StatusPending, task.Status)
	assert.True(t, task.Amount.IsZero())
	assert.Equal(t, int64(1), task.VehicleID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventCreated, f.publisher.events[0].Event)
	assert.Equal(t, int64(1), f.publisher.events[0].Maintenance.VehicleID)
	assert.Equal(t, []recordedEvent{{"published", "created", "ok"}}, f.metrics.events)
}

func TestCreateMaintenanceValidation(t *testing.T) {
	past := testNow.Add(-time.Hour)
	start := testNow.Add(48 * time.Hour)
	earlier := testNow.Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name    string
		in      ports.CreateMaintenanceInput
		kind    error
		message string
	}{
		{
			name:    "missing vehicle",
			in:      ports.CreateMaintenanceInput{StartDate: &start},
			kind:    domain.ErrValidation,
			message: "vehicle_id is required",
		},
		{
			name:    "missing start date",
			in:      ports.CreateMaintenanceInput{VehicleID: int64Ptr(1)},
			kind:    domain.ErrValidation,
			message: "start_date is required",
		},
		{
			name:    "start date in the past",
			in:      ports.CreateMaintenanceInput{VehicleID: int64Ptr(1), StartDate: &past},
			kind:    domain.ErrValidation,
			message: "start_date must be in the future",
		},
		{
			name:    "missing end date",
			in:      ports.CreateMaintenanceInput{VehicleID: int64Ptr(1), StartDate: &start},
			kind:    domain.ErrValidation,
			message: "end_date is required",
		},
		{
			name:    "end before start",
			in:      ports.CreateMaintenanceInput{VehicleID: int64Ptr(1), StartDate: &start, EndDate: &earlier},
			kind:    domain.ErrValidation,
			message: "end_date must not be before start_date",
		},
		{
			name:    "unknown vehicle",
			in:      ports.CreateMaintenanceInput{VehicleID: int64Ptr(42), StartDate: &start, EndDate: &end},
			kind:    domain.ErrNotFound,
			message: "vehicle 42 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMaintenanceFixture()

			_, err := f.svc.CreateMaintenance(context.Background(), tt.in)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
			assert.Empty(t, f.publisher.events)
			assert.Empty(t, f.repo.rows)
		})
	}
}

func TestCreateMaintenanceVehicleServiceDown(t *testing.T) {
	f := newMaintenanceFixture()
	f.dir.err = errors.New("connection refused")
	start := testNow.Add(time.Hour)
	end := start.Add(time.Hour)

	_, err := f.svc.CreateMaintenance(context.Background(), ports.CreateMaintenanceInput{
		VehicleID: int64Ptr(1),
		StartDate: &start,
		EndDate:   &end,
	})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Empty(t, f.repo.rows)
}

func TestCreateMaintenancePublishFailureDoesNotFail(t *testing.T) {
	f := newMaintenanceFixture()
	f.publisher.err = errors.New("bus down")

	task := f.create(t)

	assert.Equal(t, domain.StatusPending, f.repo.status(task.ID))
	assert.Equal(t, []recordedEvent{{"published", "created", "failed"}}, f.metrics.events)
}

func TestUpdateStatusConfirmThenComplete(t *testing.T) {
	f := newMaintenanceFixture()
	ctx := context.Background()
	task := f.create(t)

	confirmed, err := f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{
		Status:     "confirmed",
		MechanicID: int64Ptr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.MechanicID)
	assert.Equal(t, int64(9), *confirmed.MechanicID)

	completed, err := f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{
		Status: "completed",
		Amount: decimalPtr("150"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	assert.True(t, completed.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(9), *completed.MechanicID)

	assert.Equal(t, []domain.EventName{domain.EventCreated, domain.EventConfirmed, domain.EventCompleted}, f.publisher.names())
}

func TestUpdateStatusRules(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *maintenanceFixture, id int64)
		in      ports.UpdateStatusInput
		kind    error
		message string
	}{
		{
			name:    "unknown status",
			in:      ports.UpdateStatusInput{Status: "done"},
			kind:    domain.ErrValidation,
			message: `invalid status "done": expected pending, confirmed, completed or cancelled`,
		},
		{
			name:    "pending to pending",
			in:      ports.UpdateStatusInput{Status: "pending"},
			kind:    domain.ErrValidation,
			message: "invalid status transition from pending to pending",
		},
		{
			name:    "confirm without mechanic",
			in:      ports.UpdateStatusInput{Status: "confirmed"},
			kind:    domain.ErrValidation,
			message: "mechanic_id is required to confirm a maintenance",
		},
		{
			name:    "confirm with unknown mechanic",
			in:      ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(99)},
			kind:    domain.ErrNotFound,
			message: "mechanic not found",
		},
		{
			name:    "confirm with a client",
			in:      ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(7)},
			kind:    domain.ErrValidation,
			message: "user 7 is not a mechanic",
		},
		{
			name:    "complete with zero amount",
			in:      ports.UpdateStatusInput{Status: "completed", Amount: decimalPtr("0"), MechanicID: int64Ptr(9)},
			kind:    domain.ErrValidation,
			message: "amount must be greater than zero to complete a maintenance",
		},
		{
			name:    "complete without amount nor mechanic reports amount first",
			in:      ports.UpdateStatusInput{Status: "completed"},
			kind:    domain.ErrValidation,
			message: "amount must be greater than zero to complete a maintenance",
		},
		{
			name:    "complete without mechanic",
			in:      ports.UpdateStatusInput{Status: "completed", Amount: decimalPtr("80")},
			kind:    domain.ErrValidation,
			message: "mechanic_id is required to complete a maintenance",
		},
		{
			name:    "negative amount",
			in:      ports.UpdateStatusInput{Status: "cancelled", Amount: decimalPtr("-1")},
			kind:    domain.ErrValidation,
			message: "amount must not be negative",
		},
		{
			name:    "amount below the stored precision",
			in:      ports.UpdateStatusInput{Status: "completed", Amount: decimalPtr("0.001"), MechanicID: int64Ptr(9)},
			kind:    domain.ErrValidation,
			message: "amount must have at most 2 decimal places",
		},
		{
			name:    "amount too large for the store",
			in:      ports.UpdateStatusInput{Status: "completed", Amount: decimalPtr("10000000000"), MechanicID: int64Ptr(9)},
			kind:    domain.ErrValidation,
			message: "amount must be less than 10000000000",
		},
		{
			name: "cancelled is terminal",
			setup: func(t *testing.T, f *maintenanceFixture, id int64) {
				_, err := f.svc.UpdateStatus(context.Background(), id, ports.UpdateStatusInput{Status: "cancelled"})
				require.NoError(t, err)
			},
			in:      ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(9)},
			kind:    domain.ErrValidation,
			message: "cannot change status of a cancelled maintenance to confirmed",
		},
		{
			name: "confirmed cannot go back to pending",
			setup: func(t *testing.T, f *maintenanceFixture, id int64) {
				_, err := f.svc.UpdateStatus(context.Background(), id, ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(9)})
				require.NoError(t, err)
			},
			in:      ports.UpdateStatusInput{Status: "pending"},
			kind:    domain.ErrValidation,
			message: "invalid status transition from confirmed to pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMaintenanceFixture()
			task := f.create(t)
			if tt.setup != nil {
				tt.setup(t, f, task.ID)
			}
			before := f.repo.status(task.ID)
			published := len(f.publisher.names())

			_, err := f.svc.UpdateStatus(context.Background(), task.ID, tt.in)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, before, f.repo.status(task.ID))
			assert.Len(t, f.publisher.names(), published)
		})
	}
}

func TestUpdateStatusMissingTask(t *testing.T) {
	f := newMaintenanceFixture()

	_, err := f.svc.UpdateStatus(context.Background(), 404, ports.UpdateStatusInput{Status: "cancelled"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestUpdateStatusMechanicRemovedBeforeCompletion(t *testing.T) {
	f := newMaintenanceFixture()
	ctx := context.Background()
	task := f.create(t)
	_, err := f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(9)})
	require.NoError(t, err)

	delete(f.dir.users, 9)
	_, err = f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{Status: "completed", Amount: decimalPtr("10")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.StatusConfirmed, f.repo.status(task.ID))
}

func TestUpdateStatusUserServiceDown(t *testing.T) {
	f := newMaintenanceFixture()
	task := f.create(t)
	f.dir.err = errors.New("dial tcp: timeout")

	_, err := f.svc.UpdateStatus(context.Background(), task.ID, ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(9)})

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, "user service unavailable: dial tcp: timeout", err.Error())
}

func TestCompleteAcceptsLargestStoredAmount(t *testing.T) {
	f := newMaintenanceFixture()
	task := f.create(t)

	completed, err := f.svc.UpdateStatus(context.Background(), task.ID, ports.UpdateStatusInput{
		Status:     "completed",
		Amount:     decimalPtr("9999999999.99"),
		MechanicID: int64Ptr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", completed.Amount.String())
}

func TestConfirmPersistsCarriedAmount(t *testing.T) {
	f := newMaintenanceFixture()
	task := f.create(t)

	confirmed, err := f.svc.UpdateStatus(context.Background(), task.ID, ports.UpdateStatusInput{
		Status:     "confirmed",
		Amount:     decimalPtr("75.50"),
		MechanicID: int64Ptr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, "75.5", confirmed.Amount.String())
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, "75.5", f.publisher.events[1].Maintenance.Amount.String())

	// The stored amount then satisfies completion on its own.
	completed, err := f.svc.UpdateStatus(context.Background(), task.ID, ports.UpdateStatusInput{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "75.5", completed.Amount.String())
}

func TestCancelConfirmedIgnoresCarriedValues(t *testing.T) {
	f := newMaintenanceFixture()
	ctx := context.Background()
	task := f.create(t)
	_, err := f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{Status: "confirmed", MechanicID: int64Ptr(9)})
	require.NoError(t, err)

	cancelled, err := f.svc.UpdateStatus(ctx, task.ID, ports.UpdateStatusInput{
		Status:     "cancelled",
		Amount:     decimalPtr("50"),
		MechanicID: int64Ptr(10),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.True(t, cancelled.Amount.IsZero())
	require.NotNil(t, cancelled.MechanicID)
	assert.Equal(t, int64(9), *cancelled.MechanicID)

	require.Len(t, f.publisher.events, 3)
	event := f.publisher.events[2]
	assert.Equal(t, domain.EventCancelled, event.Event)
	assert.True(t, event.Maintenance.Amount.IsZero())
	require.NotNil(t, event.Maintenance.MechanicID)
	assert.Equal(t, int64(9), *event.Maintenance.MechanicID)
}

func TestCancelKeepsAmount(t *testing.T) {
	f := newMaintenanceFixture()
	task := f.create(t)

	cancelled, err := f.svc.UpdateStatus(context.Background(), task.ID, ports.UpdateStatusInput{Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.True(t, cancelled.Amount.IsZero())
	assert.Nil(t, cancelled.MechanicID)
	assert.Equal(t, []domain.EventName{domain.EventCreated, domain.EventCancelled}, f.publisher.names())
}

func TestDeleteMaintenance(t *testing.T) {
	f := newMaintenanceFixture()
	ctx := context.Background()
	task := f.create(t)

	require.NoError(t, f.svc.DeleteMaintenance(ctx, task.ID))

	_, err := f.svc.GetMaintenance(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []domain.EventName{domain.EventCreated, domain.EventDeleted}, f.publisher.names())
	assert.Equal(t, task.ID, f.publisher.events[1].Maintenance.ID)
}

func TestDeleteMissingMaintenancePublishesNothing(t *testing.T) {
	f := newMaintenanceFixture()

	err := f.svc.DeleteMaintenance(context.Background(), 12)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestListMaintenances(t *testing.T) {
	f := newMaintenanceFixture()
	f.create(t)
	f.create(t)

	tasks, err := f.svc.ListMaintenances(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.Equal(t, int64(2), tasks[1].ID)
}

func TestListMechanics(t *testing.T) {
	f := newMaintenanceFixture()

	mechanics, err := f.svc.ListMechanics(context.Background())

	require.NoError(t, err)
	require.Len(t, mechanics, 1)
	assert.Equal(t, int64(9), mechanics[0].ID)

	f.dir.err = errors.New("connection reset")
	_, err = f.svc.ListMechanics(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
