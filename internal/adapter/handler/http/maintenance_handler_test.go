package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) CreateMaintenance(ctx context.Context, in ports.CreateMaintenanceInput) (*domain.MaintenanceTask, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceTask), args.Error(1)
}

func (m *MockMaintenanceService) UpdateStatus(ctx context.Context, id int64, in ports.UpdateStatusInput) (*domain.MaintenanceTask, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceTask), args.Error(1)
}

func (m *MockMaintenanceService) GetMaintenance(ctx context.Context, id int64) (*domain.MaintenanceTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceTask), args.Error(1)
}

func (m *MockMaintenanceService) ListMaintenances(ctx context.Context) ([]*domain.MaintenanceTask, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.MaintenanceTask), args.Error(1)
}

func (m *MockMaintenanceService) DeleteMaintenance(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaintenanceService) ListMechanics(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.User), args.Error(1)
}

func newMaintenanceTestRouter(t *testing.T) (http.Handler, *MockMaintenanceService) {
	t.Helper()
	svc := new(MockMaintenanceService)
	router, err := NewMaintenanceRouter(testHTTPConfig(), nopLogger{}, NewMaintenanceHandler(svc, nopLogger{}, nopMetrics{}))
	require.NoError(t, err)
	return router.Engine(), svc
}

func TestCreateMaintenanceHandler(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	svc.On("CreateMaintenance", mock.Anything, mock.MatchedBy(func(in ports.CreateMaintenanceInput) bool {
		return in.VehicleID != nil && *in.VehicleID == 1 && in.StartDate.Equal(start) && in.EndDate == nil
	})).Return(&domain.MaintenanceTask{ID: 3, VehicleID: 1, StartDate: start, Status: domain.StatusPending, Amount: decimal.Zero}, nil)

	w := doJSON(t, router, http.MethodPost, "/", `{"vehicle_id":1,"start_date":"2026-05-01T08:00:00Z","end_date":"2026-05-01T12:00:00Z","description":"Vidange"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(1), body["vehicle_id"])
	assert.Equal(t, float64(0), body["amount"])
	svc.AssertExpectations(t)
}

func TestCreateMaintenanceHandlerInvalidJSON(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/", `{"vehicle_id":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid JSON format", decodeMessage(t, w))
	svc.AssertNotCalled(t, "CreateMaintenance", mock.Anything, mock.Anything)
}

func TestUpdateStatusHandlerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", domain.NewError(domain.ErrValidation, "amount must be greater than zero to complete a maintenance"), http.StatusBadRequest, "amount must be greater than zero to complete a maintenance"},
		{"mechanic missing", domain.NewError(domain.ErrNotFound, "mechanic not found"), http.StatusNotFound, "mechanic not found"},
		{"race", domain.NewError(domain.ErrConflict, "maintenance 4 was modified concurrently"), http.StatusConflict, "maintenance 4 was modified concurrently"},
		{"upstream", domain.Upstream("user", errors.New("connection refused")), http.StatusInternalServerError, "user service unavailable: connection refused"},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newMaintenanceTestRouter(t)
			svc.On("UpdateStatus", mock.Anything, int64(4), mock.Anything).Return(nil, tt.err)

			w := doJSON(t, router, http.MethodPatch, "/4/status", `{"status":"completed","amount":0}`)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, decodeMessage(t, w))
		})
	}
}

func TestUpdateStatusHandlerPassesAmount(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)
	mechanic := int64(9)
	svc.On("UpdateStatus", mock.Anything, int64(4), mock.MatchedBy(func(in ports.UpdateStatusInput) bool {
		return in.Status == "completed" && in.Amount != nil && in.Amount.Equal(decimal.RequireFromString("150.75")) && in.MechanicID == nil
	})).Return(&domain.MaintenanceTask{ID: 4, Status: domain.StatusCompleted, MechanicID: &mechanic, Amount: decimal.RequireFromString("150.75")}, nil)

	w := doJSON(t, router, http.MethodPatch, "/4/status", `{"status":"completed","amount":150.75}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":150.75`)
	svc.AssertExpectations(t)
}

func TestMaintenanceHandlerInvalidID(t *testing.T) {
	router, _ := newMaintenanceTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid maintenance id", decodeMessage(t, w))
}

func TestDeleteMaintenanceHandler(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)
	svc.On("DeleteMaintenance", mock.Anything, int64(2)).Return(nil)
	svc.On("DeleteMaintenance", mock.Anything, int64(5)).Return(domain.NewError(domain.ErrNotFound, "maintenance 5 not found"))

	w := doJSON(t, router, http.MethodDelete, "/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "maintenance 5 not found", decodeMessage(t, w))
}

func TestListMechanicsHandler(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)
	svc.On("ListMechanics", mock.Anything).Return([]*domain.User{{ID: 9, FirstName: "Moussa", Role: domain.RoleMechanic}}, nil)

	w := doJSON(t, router, http.MethodGet, "/mechanics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var users []domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleMechanic, users[0].Role)
}

func TestListMaintenancesHandlerEmpty(t *testing.T) {
	router, svc := newMaintenanceTestRouter(t)
	svc.On("ListMaintenances", mock.Anything).Return([]*domain.MaintenanceTask(nil), nil)

	w := doJSON(t, router, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealth(t *testing.T) {
	router, _ := newMaintenanceTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
