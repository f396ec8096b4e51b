package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	OriginName      string  `json:"origin_name" binding:"required"`
	OriginLat       float64 `json:"origin_lat" binding:"required"`
	OriginLng       float64 `json:"origin_lng" binding:"required"`
	DestinationName string  `json:"destination_name" binding:"required"`
	DestinationLat  float64 `json:"destination_lat" binding:"required"`
	DestinationLng  float64 `json:"destination_lng" binding:"required"`
	CargoWeightKg   float64 `json:"cargo_weight_kg"`
	ScheduledAt     string  `json:"scheduled_at"`
}

// AssignTripRequest is the HTTP request body for assigning a trip.
// Omitting vehicle_id requests automatic matching.
type AssignTripRequest struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

// CancelTripRequest is the HTTP request body for cancelling a trip.
type CancelTripRequest struct {
	Reason string `json:"reason"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID          string  `json:"trip_id"`
	VehicleID       string  `json:"vehicle_id,omitempty"`
	DriverID        string  `json:"driver_id,omitempty"`
	Status          string  `json:"status"`
	OriginName      string  `json:"origin_name"`
	DestinationName string  `json:"destination_name"`
	CargoWeightKg   float64 `json:"cargo_weight_kg"`
	ScheduledAt     string  `json:"scheduled_at,omitempty"`
	StartedAt       string  `json:"started_at,omitempty"`
	CompletedAt     string  `json:"completed_at,omitempty"`
	CancelledAt     string  `json:"cancelled_at,omitempty"`
	CancelReason    string  `json:"cancel_reason,omitempty"`
}

// MetricsResponse is the HTTP response for trip metrics.
type MetricsResponse struct {
	TripID          string  `json:"trip_id"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	FuelCost        string  `json:"fuel_cost"`
	TollCost        string  `json:"toll_cost"`
	TotalCost       string  `json:"total_cost"`
	Final           bool    `json:"final"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		TripID:          trip.ID,
		VehicleID:       trip.VehicleID,
		DriverID:        trip.DriverID,
		Status:          string(trip.Status),
		OriginName:      trip.OriginName,
		DestinationName: trip.DestinationName,
		CargoWeightKg:   trip.CargoWeightKg,
		CancelReason:    trip.CancelReason,
	}
	if !trip.ScheduledAt.IsZero() {
		resp.ScheduledAt = trip.ScheduledAt.Format(time.RFC3339)
	}
	if !trip.StartedAt.IsZero() {
		resp.StartedAt = trip.StartedAt.Format(time.RFC3339)
	}
	if !trip.CompletedAt.IsZero() {
		resp.CompletedAt = trip.CompletedAt.Format(time.RFC3339)
	}
	if !trip.CancelledAt.IsZero() {
		resp.CancelledAt = trip.CancelledAt.Format(time.RFC3339)
	}
	return resp
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var scheduledAt time.Time
	if req.ScheduledAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: "scheduled_at must be RFC3339"})
			return
		}
		scheduledAt = parsed
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		OriginName:      req.OriginName,
		OriginLat:       req.OriginLat,
		OriginLng:       req.OriginLng,
		DestinationName: req.DestinationName,
		DestinationLat:  req.DestinationLat,
		DestinationLng:  req.DestinationLng,
		CargoWeightKg:   req.CargoWeightKg,
		ScheduledAt:     scheduledAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// PlanTrip handles POST /v1/trips/:id/plan
func (h *TripHandler) PlanTrip(c *gin.Context) {
	trip, err := h.tripService.PlanTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// AssignTrip handles POST /v1/trips/:id/assign
func (h *TripHandler) AssignTrip(c *gin.Context) {
	var req AssignTripRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trip, err := h.tripService.AssignTrip(c.Request.Context(), service.AssignTripRequest{
		TripID:    c.Param("id"),
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// StartTrip handles POST /v1/trips/:id/start
func (h *TripHandler) StartTrip(c *gin.Context) {
	trip, err := h.tripService.StartTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CompleteTrip handles POST /v1/trips/:id/complete
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	trip, err := h.tripService.CompleteTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CancelTrip handles POST /v1/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	var req CancelTripRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondJSON(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trip, err := h.tripService.CancelTrip(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetMetrics handles GET /v1/trips/:id/metrics
func (h *TripHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.tripService.GetTripMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, MetricsResponse{
		TripID:          metrics.TripID,
		DistanceKm:      metrics.DistanceKm,
		DurationMinutes: metrics.DurationMinutes,
		FuelCost:        metrics.FuelCost.StringFixed(2),
		TollCost:        metrics.TollCost.StringFixed(2),
		TotalCost:       metrics.TotalCost.StringFixed(2),
		Final:           metrics.Final,
	})
}
