package service

import "errors"

var (
	// ErrLoginFlowNotFound is returned when a login flow ID is unknown or expired.
	ErrLoginFlowNotFound = errors.New("login flow not found")

	// ErrInvalidLoginStep is returned when a submission does not match the
	// flow's current step.
	ErrInvalidLoginStep = errors.New("action not valid for current login step")

	// ErrInvalidRole is returned when role selection names an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidAdminMethod is returned when an unknown admin login method is chosen.
	ErrInvalidAdminMethod = errors.New("invalid admin login method")

	// ErrInvalidMobileNumber is returned when a mobile number is not exactly
	// 10 decimal digits.
	ErrInvalidMobileNumber = errors.New("mobile number must be 10 digits")

	// ErrInvalidOTP is returned when the submitted code does not match the
	// issued one. The flow stays put; retries are unlimited.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrMissingBookingDetails is returned when any trip detail field is empty.
	ErrMissingBookingDetails = errors.New("pickup, dropoff, date and time are required")

	// ErrInvalidVehicleType is returned for vehicle types outside the rate table.
	ErrInvalidVehicleType = errors.New("invalid vehicle type")

	// ErrBookingNotAtFareDetails is returned when confirm is attempted off-step.
	ErrBookingNotAtFareDetails = errors.New("booking is not awaiting confirmation")

	// ErrBookingNotAtPayment is returned when pay or back is attempted off-step.
	ErrBookingNotAtPayment = errors.New("booking is not awaiting payment")

	// ErrBookingNotConfirmed is returned when "new booking" is requested
	// before the wizard reached its terminal step.
	ErrBookingNotConfirmed = errors.New("booking is not confirmed")

	// ErrBookingNotOwned is returned when a session touches another user's booking.
	ErrBookingNotOwned = errors.New("booking does not belong to this session")

	// ErrPolicyNotAcknowledged is returned when the non-refundable-advance
	// policy box was not ticked.
	ErrPolicyNotAcknowledged = errors.New("cancellation policy must be acknowledged")

	// ErrPaymentFailed is returned when the advance charge did not succeed.
	ErrPaymentFailed = errors.New("advance payment failed")

	// ErrInvalidPaymentID is returned when a payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidPaymentAmount is returned when a charge amount is negative.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrBookingBusy is returned when another transition holds the booking lock.
	ErrBookingBusy = errors.New("booking transition already in progress")
)
