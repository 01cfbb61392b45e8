package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	"cab/internal/service"
)

// RateHandler handles HTTP requests for the admin rate table.
type RateHandler struct {
	rateService *service.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// RateEditRequest is one proposed rate change. Omitted fields keep the
// current value.
type RateEditRequest struct {
	VehicleType string   `json:"vehicle_type"`
	BaseFare    *float64 `json:"base_fare,omitempty"`
	PerKm       *float64 `json:"per_km,omitempty"`
}

// UpdateRatesRequest is the HTTP request body for editing the rate table.
type UpdateRatesRequest struct {
	Edits []RateEditRequest `json:"edits"`
}

// RateResponse is the HTTP representation of one vehicle's pricing.
type RateResponse struct {
	VehicleType string  `json:"vehicle_type"`
	Name        string  `json:"name"`
	Capacity    string  `json:"capacity"`
	BaseFare    float64 `json:"base_fare"`
	PerKm       float64 `json:"per_km"`
}

func toRateResponses(table map[domain.VehicleType]domain.VehicleOption) []RateResponse {
	response := make([]RateResponse, 0, len(table))
	for _, vt := range domain.AllVehicleTypes {
		option := table[vt]
		response = append(response, RateResponse{
			VehicleType: string(option.Type),
			Name:        option.Name,
			Capacity:    option.Capacity,
			BaseFare:    option.BaseFare,
			PerKm:       option.PerKm,
		})
	}
	return response
}

// GetRates handles GET /v1/rates
func (h *RateHandler) GetRates(c *gin.Context) {
	respondJSON(c, http.StatusOK, toRateResponses(h.rateService.GetRates(c.Request.Context())))
}

// UpdateRates handles PUT /v1/rates
func (h *RateHandler) UpdateRates(c *gin.Context) {
	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	edits := make([]service.RateEdit, 0, len(req.Edits))
	for _, e := range req.Edits {
		edits = append(edits, service.RateEdit{
			VehicleType: domain.VehicleType(e.VehicleType),
			BaseFare:    e.BaseFare,
			PerKm:       e.PerKm,
		})
	}

	table, err := h.rateService.UpdateRates(c.Request.Context(), edits)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRateResponses(table))
}
