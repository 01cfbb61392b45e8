package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	"cab/internal/middleware"
	"cab/internal/service"
)

// BookingHandler handles HTTP requests for the booking wizard.
type BookingHandler struct {
	bookingService *service.BookingService
	paymentService *service.PaymentService
	rateService    *service.RateService
	confirmations  *service.ConfirmationService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	bookingService *service.BookingService,
	paymentService *service.PaymentService,
	rateService *service.RateService,
	confirmations *service.ConfirmationService,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		paymentService: paymentService,
		rateService:    rateService,
		confirmations:  confirmations,
	}
}

// CreateBookingRequest is the HTTP request body for submitting the booking form.
type CreateBookingRequest struct {
	Pickup      string `json:"pickup"`
	Dropoff     string `json:"dropoff"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	VehicleType string `json:"vehicle_type"`
}

// PayRequest is the HTTP request body for paying the advance.
type PayRequest struct {
	PolicyAcknowledged bool `json:"policy_acknowledged"`
}

// VehicleResponse describes a bookable vehicle class.
type VehicleResponse struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Capacity string  `json:"capacity"`
	BaseFare float64 `json:"base_fare"`
	PerKm    float64 `json:"per_km"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID          string  `json:"id"`
	Step        string  `json:"step"`
	Pickup      string  `json:"pickup"`
	Dropoff     string  `json:"dropoff"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	VehicleType string  `json:"vehicle_type"`
	VehicleName string  `json:"vehicle_name"`
	Fare        float64 `json:"fare"`
	Distance    string  `json:"distance"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	Advance     float64 `json:"advance"`
	Remaining   float64 `json:"remaining"`
	ConfirmedAt string  `json:"confirmed_at,omitempty"`
}

// PaymentResponse is the HTTP representation of an advance payment.
type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// ConfirmationResponse is the confirmation summary for a completed booking.
type ConfirmationResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Vehicle   string  `json:"vehicle"`
	Fare      float64 `json:"fare"`
	Advance   float64 `json:"advance"`
	Remaining float64 `json:"remaining"`
	Summary   string  `json:"summary"`
}

// ConfirmBookingResponse is the HTTP response for the confirm transition.
type ConfirmBookingResponse struct {
	Booking      BookingResponse       `json:"booking"`
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
}

// PayBookingResponse is the HTTP response for the pay transition.
type PayBookingResponse struct {
	Booking      BookingResponse       `json:"booking"`
	Payment      PaymentResponse       `json:"payment"`
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
}

// DraftResponse is the reset wizard state after starting a new booking.
type DraftResponse struct {
	Step        string `json:"step"`
	VehicleType string `json:"vehicle_type"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	response := BookingResponse{
		ID:          b.ID,
		Step:        string(b.Step),
		Pickup:      b.Details.Pickup,
		Dropoff:     b.Details.Dropoff,
		Date:        b.Details.Date,
		Time:        b.Details.Time,
		VehicleType: string(b.VehicleType),
		VehicleName: b.VehicleName,
		Fare:        b.Estimate.Fare,
		Distance:    b.Estimate.Distance,
		Duration:    b.Estimate.Duration,
		Description: b.Estimate.Description,
		Advance:     b.Advance(),
		Remaining:   b.Remaining(),
	}

	if !b.ConfirmedAt.IsZero() {
		response.ConfirmedAt = b.ConfirmedAt.Format(time.RFC3339)
	}

	return response
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Status:    string(p.Status),
	}
}

func (h *BookingHandler) toConfirmationResponse(c *domain.Confirmation) *ConfirmationResponse {
	if c == nil {
		return nil
	}
	return &ConfirmationResponse{
		ID:        c.ID,
		BookingID: c.BookingID,
		Vehicle:   c.Vehicle,
		Fare:      c.Fare,
		Advance:   c.Advance,
		Remaining: c.Remaining,
		Summary:   h.confirmations.FormatConfirmation(c),
	}
}

// GetVehicles handles GET /v1/vehicles
func (h *BookingHandler) GetVehicles(c *gin.Context) {
	table := h.rateService.GetRates(c.Request.Context())

	response := make([]VehicleResponse, 0, len(table))
	for _, vt := range domain.AllVehicleTypes {
		option := table[vt]
		response = append(response, VehicleResponse{
			Type:     string(option.Type),
			Name:     option.Name,
			Capacity: option.Capacity,
			BaseFare: option.BaseFare,
			PerKm:    option.PerKm,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.EstimateFare(c.Request.Context(), service.EstimateRequest{
		Session: session,
		Details: domain.BookingDetails{
			Pickup:  req.Pickup,
			Dropoff: req.Dropoff,
			Date:    req.Date,
			Time:    req.Time,
		},
		VehicleType: domain.VehicleType(req.VehicleType),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// ListBookings handles GET /v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}

	respondJSON(c, http.StatusOK, response)
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	booking, err := h.bookingService.GetBooking(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	result, err := h.bookingService.Confirm(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ConfirmBookingResponse{
		Booking:      toBookingResponse(result.Booking),
		Confirmation: h.toConfirmationResponse(result.Confirmation),
	})
}

// PayAdvance handles POST /v1/bookings/:id/pay
func (h *BookingHandler) PayAdvance(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.bookingService.Pay(c.Request.Context(), session, service.PayRequest{
		BookingID:          c.Param("id"),
		PolicyAcknowledged: req.PolicyAcknowledged,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PayBookingResponse{
		Booking:      toBookingResponse(result.Booking),
		Payment:      toPaymentResponse(result.Payment),
		Confirmation: h.toConfirmationResponse(result.Confirmation),
	})
}

// BackToFareDetails handles POST /v1/bookings/:id/back
func (h *BookingHandler) BackToFareDetails(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	booking, err := h.bookingService.BackToFareDetails(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// NewBooking handles POST /v1/bookings/:id/new
func (h *BookingHandler) NewBooking(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	draft, err := h.bookingService.NewBooking(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DraftResponse{
		Step:        string(draft.Step),
		VehicleType: string(draft.VehicleType),
	})
}

// GetPayment handles GET /v1/payments/:id
func (h *BookingHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}
