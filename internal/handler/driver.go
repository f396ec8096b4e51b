package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zelesto/trailers-backend-sub001/internal/repository"
	"github.com/Zelesto/trailers-backend-sub001/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
	driverRepo    repository.DriverRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, driverRepo repository.DriverRepository) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		driverRepo:    driverRepo,
	}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number,omitempty"`
	Status        string `json:"status"`
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.LicenseNumber == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and license_number are required"})
		return
	}

	// Check if driver already exists
	if req.Phone != "" {
		existing, err := h.driverRepo.GetByPhone(c.Request.Context(), req.Phone)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			respondError(c, err)
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{
				"message": "Driver already registered",
				"driver":  DriverResponse{ID: existing.ID, Name: existing.Name, Phone: existing.Phone, Status: string(existing.Status)},
			})
			return
		}
	}

	driver, err := h.driverService.RegisterDriver(c.Request.Context(), service.RegisterDriverRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DriverResponse{
		ID:            driver.ID,
		Name:          driver.Name,
		Phone:         driver.Phone,
		LicenseNumber: driver.LicenseNumber,
		Status:        string(driver.Status),
	})
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverService.GetAllDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var response []DriverResponse
	for _, d := range drivers {
		response = append(response, DriverResponse{
			ID:            d.ID,
			Name:          d.Name,
			Phone:         d.Phone,
			LicenseNumber: d.LicenseNumber,
			Status:        string(d.Status),
		})
	}

	c.JSON(http.StatusOK, response)
}

// SetOffDuty handles POST /v1/drivers/:id/off-duty
func (h *DriverHandler) SetOffDuty(c *gin.Context) {
	if err := h.driverService.SetOffDuty(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetAvailable handles POST /v1/drivers/:id/available
func (h *DriverHandler) SetAvailable(c *gin.Context) {
	if err := h.driverService.SetAvailable(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
