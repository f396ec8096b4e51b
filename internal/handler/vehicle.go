package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
	vehicleRepo    repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService, vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		vehicleRepo:    vehicleRepo,
	}
}

// RegisterVehicleRequest is the HTTP request body for vehicle registration.
type RegisterVehicleRequest struct {
	Plate      string  `json:"plate"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	CapacityKg float64 `json:"capacity_kg"`
}

// UpdateLocationRequest is the HTTP request body for a position report.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID         string  `json:"id"`
	Plate      string  `json:"plate"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	CapacityKg float64 `json:"capacity_kg"`
	Status     string  `json:"status"`
}

// Register handles POST /v1/vehicles/register
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Plate == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "plate is required"})
		return
	}

	// Check if vehicle already exists
	existing, err := h.vehicleRepo.GetByPlate(c.Request.Context(), req.Plate)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Vehicle already registered",
			"vehicle": VehicleResponse{ID: existing.ID, Plate: existing.Plate, Make: existing.Make, Model: existing.Model, CapacityKg: existing.CapacityKg, Status: string(existing.Status)},
		})
		return
	}

	vehicle, err := h.vehicleService.RegisterVehicle(c.Request.Context(), service.RegisterVehicleRequest{
		Plate:      req.Plate,
		Make:       req.Make,
		Model:      req.Model,
		CapacityKg: req.CapacityKg,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, VehicleResponse{
		ID:         vehicle.ID,
		Plate:      vehicle.Plate,
		Make:       vehicle.Make,
		Model:      vehicle.Model,
		CapacityKg: vehicle.CapacityKg,
		Status:     string(vehicle.Status),
	})
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []VehicleResponse
	for _, v := range vehicles {
		response = append(response, VehicleResponse{
			ID:         v.ID,
			Plate:      v.Plate,
			Make:       v.Make,
			Model:      v.Model,
			CapacityKg: v.CapacityKg,
			Status:     string(v.Status),
		})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateLocation handles POST /v1/vehicles/:id/location
func (h *VehicleHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.vehicleService.UpdateLocation(c.Request.Context(), service.UpdateVehicleLocationRequest{
		VehicleID: c.Param("id"),
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetMaintenance handles POST /v1/vehicles/:id/maintenance
func (h *VehicleHandler) SetMaintenance(c *gin.Context) {
	if err := h.vehicleService.SetMaintenance(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReturnToService handles POST /v1/vehicles/:id/return
func (h *VehicleHandler) ReturnToService(c *gin.Context) {
	if err := h.vehicleService.ReturnToService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
