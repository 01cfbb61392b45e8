package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cab/internal/domain"
	"cab/internal/service"
)

// AuthHandler handles HTTP requests for the login wizard.
type AuthHandler struct {
	loginService *service.LoginService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(loginService *service.LoginService) *AuthHandler {
	return &AuthHandler{loginService: loginService}
}

// SelectRoleRequest is the HTTP request body for choosing a role.
type SelectRoleRequest struct {
	Role string `json:"role"` // GUEST or ADMIN
}

// SubmitMobileRequest is the HTTP request body for mobile number input.
type SubmitMobileRequest struct {
	Mobile string `json:"mobile"`
}

// SubmitOTPRequest is the HTTP request body for OTP input.
type SubmitOTPRequest struct {
	OTP string `json:"otp"`
}

// SelectAdminMethodRequest is the HTTP request body for the admin login choice.
type SelectAdminMethodRequest struct {
	Method string `json:"method"` // EMAIL or MOBILE_INPUT
}

// AdminEmailLoginRequest is the HTTP request body for email/password login.
type AdminEmailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FlowResponse is the HTTP representation of an in-progress login flow.
// The demo OTP is echoed so the fixed-code login works without an SMS
// gateway; a real provider would deliver it out of band instead.
type FlowResponse struct {
	ID          string `json:"id"`
	Step        string `json:"step"`
	AdminMethod string `json:"admin_method,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	DemoOTP     string `json:"demo_otp,omitempty"`
}

// LoginResponse is the HTTP response for a completed login.
type LoginResponse struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
}

func toFlowResponse(flow *domain.LoginFlow) FlowResponse {
	return FlowResponse{
		ID:          flow.ID,
		Step:        string(flow.Step),
		AdminMethod: string(flow.AdminMethod),
		Mobile:      flow.Mobile,
		DemoOTP:     flow.IssuedOTP,
	}
}

func toLoginResponse(result *service.LoginResult) LoginResponse {
	return LoginResponse{
		Token:      result.Token,
		Role:       string(result.Session.Role),
		Identifier: result.Session.Identifier,
	}
}

// StartFlow handles POST /v1/auth/flows
func (h *AuthHandler) StartFlow(c *gin.Context) {
	flow, err := h.loginService.Start(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toFlowResponse(flow))
}

// SelectRole handles POST /v1/auth/flows/:id/role
func (h *AuthHandler) SelectRole(c *gin.Context) {
	var req SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	flow, err := h.loginService.SelectRole(c.Request.Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlowResponse(flow))
}

// SubmitGuestMobile handles POST /v1/auth/flows/:id/guest/mobile
func (h *AuthHandler) SubmitGuestMobile(c *gin.Context) {
	var req SubmitMobileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	flow, err := h.loginService.SubmitGuestMobile(c.Request.Context(), c.Param("id"), req.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlowResponse(flow))
}

// SubmitGuestOTP handles POST /v1/auth/flows/:id/guest/otp
func (h *AuthHandler) SubmitGuestOTP(c *gin.Context) {
	var req SubmitOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.loginService.SubmitGuestOTP(c.Request.Context(), c.Param("id"), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoginResponse(result))
}

// SelectAdminMethod handles POST /v1/auth/flows/:id/admin/method
func (h *AuthHandler) SelectAdminMethod(c *gin.Context) {
	var req SelectAdminMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	flow, err := h.loginService.SelectAdminMethod(c.Request.Context(), c.Param("id"), domain.AdminLoginMethod(req.Method))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlowResponse(flow))
}

// SubmitAdminEmail handles POST /v1/auth/flows/:id/admin/email
func (h *AuthHandler) SubmitAdminEmail(c *gin.Context) {
	var req AdminEmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.loginService.SubmitAdminEmail(c.Request.Context(), c.Param("id"), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoginResponse(result))
}

// SubmitAdminMobile handles POST /v1/auth/flows/:id/admin/mobile
func (h *AuthHandler) SubmitAdminMobile(c *gin.Context) {
	var req SubmitMobileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	flow, err := h.loginService.SubmitAdminMobile(c.Request.Context(), c.Param("id"), req.Mobile)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlowResponse(flow))
}

// SubmitAdminOTP handles POST /v1/auth/flows/:id/admin/otp
func (h *AuthHandler) SubmitAdminOTP(c *gin.Context) {
	var req SubmitOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.loginService.SubmitAdminOTP(c.Request.Context(), c.Param("id"), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoginResponse(result))
}

// Back handles POST /v1/auth/flows/:id/back
func (h *AuthHandler) Back(c *gin.Context) {
	flow, err := h.loginService.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFlowResponse(flow))
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))

	if err := h.loginService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
