package http

import (
	"net/http"
	"time"

	"github.com/garagehub/garage_services/internal/core/domain"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService ports.VehicleService
	logger         ports.LoggerPort
	metrics        ports.MetricsPort
}

type VehicleRequest struct {
	Marque             string `json:"marque" binding:"required" example:"Toyota"`
	Modele             string `json:"modele" binding:"required" example:"Corolla"`
	Annee              int    `json:"annee" binding:"required" example:"2019"`
	NumImmatriculation string `json:"num_immatriculation" binding:"required" example:"DK-1234-AB"`
	Kilometrage        int    `json:"kilometrage" example:"85000"`
	ProprietaireID     int64  `json:"proprietaire_id" binding:"required" example:"7"`
}

type UpdateVehicle struct {
	Marque             *string `json:"marque,omitempty" example:"Toyota"`
	Modele             *string `json:"modele,omitempty" example:"Yaris"`
	Annee              *int    `json:"annee,omitempty" example:"2020"`
	NumImmatriculation *string `json:"num_immatriculation,omitempty" example:"DK-4321-BA"`
	Kilometrage        *int    `json:"kilometrage,omitempty" example:"90000"`
	ProprietaireID     *int64  `json:"proprietaire_id,omitempty" example:"11"`
}

type VehicleResponse struct {
	Message string          `json:"message"`
	Vehicle *domain.Vehicle `json:"vehicule"`
}

type VehiclesResponse struct {
	Message  string            `json:"message"`
	Vehicles []*domain.Vehicle `json:"vehicules"`
}

func NewVehicleHandler(vehicleService ports.VehicleService, logger ports.LoggerPort, metrics ports.MetricsPort) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
		metrics:        metrics,
	}
}

// @Summary Register a vehicle
// @Tags vehicules
// @Accept json
// @Produce json
// @Param request body VehicleRequest true "Vehicle data"
// @Success 201 {object} VehicleResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "Owner not found"
// @Failure 409 {object} errorResponse "Registration number already exists"
// @Router / [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	vehicle := &domain.Vehicle{
		Marque:             req.Marque,
		Modele:             req.Modele,
		Annee:              req.Annee,
		NumImmatriculation: req.NumImmatriculation,
		Kilometrage:        req.Kilometrage,
		ProprietaireID:     req.ProprietaireID,
	}

	created, err := h.vehicleService.CreateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, VehicleResponse{Message: "Vehicle created successfully", Vehicle: created})
}

// @Summary List vehicles
// @Tags vehicules
// @Produce json
// @Success 200 {object} VehiclesResponse
// @Router / [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if vehicles == nil {
		vehicles = []*domain.Vehicle{}
	}

	c.JSON(http.StatusOK, VehiclesResponse{Message: "Vehicles retrieved successfully", Vehicles: vehicles})
}

// @Summary Get a vehicle
// @Tags vehicules
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} VehicleResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "vehicle")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, VehicleResponse{Message: "Vehicle retrieved successfully", Vehicle: vehicle})
}

// @Summary Update a vehicle
// @Tags vehicules
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param request body UpdateVehicle true "Fields to change"
// @Success 200 {object} VehicleResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "vehicle")
	if !ok {
		return
	}

	var req UpdateVehicle
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update vehicle", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": id,
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	if req.Marque != nil {
		vehicle.Marque = *req.Marque
	}
	if req.Modele != nil {
		vehicle.Modele = *req.Modele
	}
	if req.Annee != nil {
		vehicle.Annee = *req.Annee
	}
	if req.NumImmatriculation != nil {
		vehicle.NumImmatriculation = *req.NumImmatriculation
	}
	if req.Kilometrage != nil {
		vehicle.Kilometrage = *req.Kilometrage
	}
	if req.ProprietaireID != nil {
		vehicle.ProprietaireID = *req.ProprietaireID
	}

	updated, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, VehicleResponse{Message: "Vehicle updated successfully", Vehicle: updated})
}

// @Summary Delete a vehicle
// @Tags vehicules
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := parseID(c, "vehicle")
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Message: "Vehicle deleted successfully"})
}
