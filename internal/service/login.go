package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"cab/internal/auth"
	"cab/internal/domain"
	"cab/internal/redis"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// LoginResult is returned when a flow reaches its terminal state.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// LoginService drives the login state machine. Each submission loads the
// flow, applies one transition, and saves it back; rejected input leaves the
// flow untouched.
type LoginService struct {
	flows               redis.LoginFlowStoreInterface
	sessions            redis.SessionStoreInterface
	provider            auth.Provider
	notificationService *NotificationService
}

// NewLoginService creates a new LoginService.
func NewLoginService(
	flows redis.LoginFlowStoreInterface,
	sessions redis.SessionStoreInterface,
	provider auth.Provider,
	notificationService *NotificationService,
) *LoginService {
	return &LoginService{
		flows:               flows,
		sessions:            sessions,
		provider:            provider,
		notificationService: notificationService,
	}
}

// Start creates a new flow at role selection.
func (s *LoginService) Start(ctx context.Context) (*domain.LoginFlow, error) {
	flow := &domain.LoginFlow{
		ID:        uuid.New().String(),
		Step:      domain.LoginStepRoleSelection,
		CreatedAt: time.Now(),
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// SelectRole moves from role selection into the guest or admin path.
func (s *LoginService) SelectRole(ctx context.Context, flowID string, role domain.Role) (*domain.LoginFlow, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepRoleSelection {
		return nil, ErrInvalidLoginStep
	}

	switch role {
	case domain.RoleGuest:
		flow.Step = domain.LoginStepGuestMobile
	case domain.RoleAdmin:
		flow.Step = domain.LoginStepAdmin
		flow.AdminMethod = domain.AdminMethodChoice
	default:
		return nil, ErrInvalidRole
	}

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// SubmitGuestMobile validates the number and issues an OTP. A malformed
// number is rejected without changing the flow.
func (s *LoginService) SubmitGuestMobile(ctx context.Context, flowID, mobile string) (*domain.LoginFlow, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepGuestMobile {
		return nil, ErrInvalidLoginStep
	}
	if !mobilePattern.MatchString(mobile) {
		return nil, ErrInvalidMobileNumber
	}

	code, err := s.provider.IssueGuestOTP(ctx, mobile)
	if err != nil {
		return nil, err
	}

	flow.Mobile = mobile
	flow.IssuedOTP = code
	flow.Step = domain.LoginStepGuestOTP

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyOTPIssued(ctx, mobile, code)
	}
	return flow, nil
}

// SubmitGuestOTP completes the guest path when the code matches.
func (s *LoginService) SubmitGuestOTP(ctx context.Context, flowID, otp string) (*LoginResult, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepGuestOTP {
		return nil, ErrInvalidLoginStep
	}
	if otp != flow.IssuedOTP {
		return nil, ErrInvalidOTP
	}

	return s.createSession(ctx, flow, domain.RoleGuest, flow.Mobile)
}

// SelectAdminMethod picks email or mobile within the admin path.
func (s *LoginService) SelectAdminMethod(ctx context.Context, flowID string, method domain.AdminLoginMethod) (*domain.LoginFlow, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepAdmin || flow.AdminMethod != domain.AdminMethodChoice {
		return nil, ErrInvalidLoginStep
	}

	switch method {
	case domain.AdminMethodEmail, domain.AdminMethodMobileInput:
		flow.AdminMethod = method
	default:
		return nil, ErrInvalidAdminMethod
	}

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// SubmitAdminEmail completes the admin path via the credential allow-list.
func (s *LoginService) SubmitAdminEmail(ctx context.Context, flowID, email, password string) (*LoginResult, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepAdmin || flow.AdminMethod != domain.AdminMethodEmail {
		return nil, ErrInvalidLoginStep
	}

	if err := s.provider.VerifyAdminCredentials(ctx, email, password); err != nil {
		return nil, err
	}

	return s.createSession(ctx, flow, domain.RoleAdmin, email)
}

// SubmitAdminMobile issues an admin OTP for allow-listed numbers.
func (s *LoginService) SubmitAdminMobile(ctx context.Context, flowID, mobile string) (*domain.LoginFlow, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepAdmin || flow.AdminMethod != domain.AdminMethodMobileInput {
		return nil, ErrInvalidLoginStep
	}

	code, err := s.provider.IssueAdminOTP(ctx, mobile)
	if err != nil {
		return nil, err
	}

	flow.Mobile = mobile
	flow.IssuedOTP = code
	flow.AdminMethod = domain.AdminMethodMobileOTP

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyOTPIssued(ctx, mobile, code)
	}
	return flow, nil
}

// SubmitAdminOTP completes the admin mobile path when the code matches.
func (s *LoginService) SubmitAdminOTP(ctx context.Context, flowID, otp string) (*LoginResult, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow.Step != domain.LoginStepAdmin || flow.AdminMethod != domain.AdminMethodMobileOTP {
		return nil, ErrInvalidLoginStep
	}
	if otp != flow.IssuedOTP {
		return nil, ErrInvalidOTP
	}

	return s.createSession(ctx, flow, domain.RoleAdmin, flow.Mobile)
}

// Back returns to the immediately preceding state with no side effects.
func (s *LoginService) Back(ctx context.Context, flowID string) (*domain.LoginFlow, error) {
	flow, err := s.getFlow(ctx, flowID)
	if err != nil {
		return nil, err
	}

	switch flow.Step {
	case domain.LoginStepGuestMobile:
		flow.Step = domain.LoginStepRoleSelection
	case domain.LoginStepGuestOTP:
		flow.Step = domain.LoginStepGuestMobile
	case domain.LoginStepAdmin:
		switch flow.AdminMethod {
		case domain.AdminMethodChoice:
			flow.Step = domain.LoginStepRoleSelection
			flow.AdminMethod = ""
		case domain.AdminMethodEmail, domain.AdminMethodMobileInput:
			flow.AdminMethod = domain.AdminMethodChoice
		case domain.AdminMethodMobileOTP:
			flow.AdminMethod = domain.AdminMethodMobileInput
		default:
			return nil, ErrInvalidLoginStep
		}
	default:
		return nil, ErrInvalidLoginStep
	}

	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// Logout destroys a session.
func (s *LoginService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *LoginService) getFlow(ctx context.Context, flowID string) (*domain.LoginFlow, error) {
	if flowID == "" {
		return nil, ErrLoginFlowNotFound
	}
	flow, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, ErrLoginFlowNotFound
	}
	return flow, nil
}

// createSession is the terminal transition: the flow is consumed and a
// session takes its place.
func (s *LoginService) createSession(ctx context.Context, flow *domain.LoginFlow, role domain.Role, identifier string) (*LoginResult, error) {
	session := &domain.Session{
		Role:       role,
		Identifier: identifier,
		CreatedAt:  time.Now(),
	}

	token := uuid.New().String()
	if err := s.sessions.Save(ctx, token, session); err != nil {
		return nil, err
	}

	_ = s.flows.Delete(ctx, flow.ID)

	return &LoginResult{Token: token, Session: session}, nil
}
