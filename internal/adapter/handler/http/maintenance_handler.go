package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MaintenanceHandler struct {
	maintenanceService ports.MaintenanceService
	logger             ports.LoggerPort
	metrics            ports.MetricsPort
}

type CreateMaintenanceRequest struct {
	VehicleID   *int64     `json:"vehicle_id" example:"1"`
	MechanicID  *int64     `json:"mechanic_id,omitempty" example:"9"`
	StartDate   *time.Time `json:"start_date" example:"2026-03-02T08:30:00Z"`
	EndDate     *time.Time `json:"end_date,omitempty" example:"2026-03-03T17:00:00Z"`
	Description string     `json:"description" example:"Oil change and brake check"`
}

type UpdateStatusRequest struct {
	Status     string           `json:"status" example:"completed"`
	Amount     *decimal.Decimal `json:"amount,omitempty" swaggertype:"number" example:"150"`
	MechanicID *int64           `json:"mechanic_id,omitempty" example:"9"`
}

func NewMaintenanceHandler(
	maintenanceService ports.MaintenanceService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
		metrics:            metrics,
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		newErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" id")
		return 0, false
	}
	return id, true
}

// @Summary Schedule a maintenance
// @Description Creates a pending maintenance for an existing vehicle
// @Tags maintenances
// @Accept json
// @Produce json
// @Param request body CreateMaintenanceRequest true "Maintenance data"
// @Success 201 {object} domain.MaintenanceTask "Maintenance created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 404 {object} errorResponse "Vehicle not found"
// @Failure 500 {object} errorResponse "Vehicle service unavailable"
// @Router / [post]
func (h *MaintenanceHandler) CreateMaintenance(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create maintenance", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	task, err := h.maintenanceService.CreateMaintenance(c.Request.Context(), ports.CreateMaintenanceInput{
		VehicleID:   req.VehicleID,
		MechanicID:  req.MechanicID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// @Summary List maintenances
// @Tags maintenances
// @Produce json
// @Success 200 {array} domain.MaintenanceTask
// @Failure 500 {object} errorResponse
// @Router / [get]
func (h *MaintenanceHandler) ListMaintenances(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	tasks, err := h.maintenanceService.ListMaintenances(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.MaintenanceTask{}
	}

	c.JSON(http.StatusOK, tasks)
}

// @Summary Get a maintenance
// @Tags maintenances
// @Produce json
// @Param id path int true "Maintenance ID"
// @Success 200 {object} domain.MaintenanceTask
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [get]
func (h *MaintenanceHandler) GetMaintenance(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "maintenance")
	if !ok {
		return
	}

	task, err := h.maintenanceService.GetMaintenance(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary Change a maintenance status
// @Description Drives the pending, confirmed, completed, cancelled workflow
// @Tags maintenances
// @Accept json
// @Produce json
// @Param id path int true "Maintenance ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} domain.MaintenanceTask
// @Failure 400 {object} errorResponse "Invalid status, transition, amount or mechanic"
// @Failure 404 {object} errorResponse "Maintenance or mechanic not found"
// @Failure 409 {object} errorResponse "Maintenance modified concurrently"
// @Router /{id}/status [patch]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "maintenance")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update status", map[string]interface{}{
			"error":          err.Error(),
			"maintenance_id": id,
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	task, err := h.maintenanceService.UpdateStatus(c.Request.Context(), id, ports.UpdateStatusInput{
		Status:     req.Status,
		Amount:     req.Amount,
		MechanicID: req.MechanicID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// @Summary Delete a maintenance
// @Tags maintenances
// @Produce json
// @Param id path int true "Maintenance ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [delete]
func (h *MaintenanceHandler) DeleteMaintenance(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "maintenance")
	if !ok {
		return
	}

	if err := h.maintenanceService.DeleteMaintenance(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "Maintenance deleted successfully"})
}

// @Summary List mechanics
// @Description Users of the user service whose role is mecanicien
// @Tags maintenances
// @Produce json
// @Success 200 {array} domain.User
// @Failure 500 {object} errorResponse "User service unavailable"
// @Router /mechanics [get]
func (h *MaintenanceHandler) ListMechanics(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	mechanics, err := h.maintenanceService.ListMechanics(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, mechanics)
}
