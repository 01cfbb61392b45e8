package domain

import "time"

// LoginStep represents the current state of the login flow.
type LoginStep string

const (
	LoginStepRoleSelection LoginStep = "ROLE_SELECTION"
	LoginStepGuestMobile   LoginStep = "GUEST_MOBILE_INPUT"
	LoginStepGuestOTP      LoginStep = "GUEST_OTP_INPUT"
	LoginStepAdmin         LoginStep = "ADMIN_LOGIN"
)

// AdminLoginMethod is the sub-state within ADMIN_LOGIN.
type AdminLoginMethod string

const (
	AdminMethodChoice      AdminLoginMethod = "CHOICE"
	AdminMethodEmail       AdminLoginMethod = "EMAIL"
	AdminMethodMobileInput AdminLoginMethod = "MOBILE_INPUT"
	AdminMethodMobileOTP   AdminLoginMethod = "MOBILE_OTP"
)

// LoginFlow is the state of one login attempt. Every transition is triggered
// by a single submission; failed submissions leave the flow unchanged.
type LoginFlow struct {
	ID          string           `json:"id"`
	Step        LoginStep        `json:"step"`
	AdminMethod AdminLoginMethod `json:"admin_method,omitempty"`
	Mobile      string           `json:"mobile,omitempty"`
	IssuedOTP   string           `json:"issued_otp,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
