package tests

import (
	"context"
	"errors"
	"testing"

	"cab/internal/auth"
	"cab/internal/domain"
	"cab/internal/service"
)

const (
	testGuestOTP    = "123456"
	testAdminOTP    = "987654"
	testAdminEmail  = "admin@mussooriecab.com"
	testAdminPass   = "password123"
	testAdminMobile = "9999999999"
)

func newLoginFixture(t *testing.T) (*service.LoginService, *MockLoginFlowStore, *MockSessionStore) {
	t.Helper()

	provider, err := auth.NewFixedProvider(
		map[string]string{testAdminEmail: testAdminPass},
		[]string{testAdminMobile},
		testGuestOTP,
		testAdminOTP,
	)
	if err != nil {
		t.Fatalf("failed to build provider: %v", err)
	}

	flows := NewMockLoginFlowStore()
	sessions := NewMockSessionStore()
	return service.NewLoginService(flows, sessions, provider, nil), flows, sessions
}

// ──────────────────────────────────────────────
// 1. GUEST LOGIN PATH
// ──────────────────────────────────────────────

func TestGuestLogin_HappyPath_CreatesSession(t *testing.T) {
	t.Parallel()

	loginService, flows, sessions := newLoginFixture(t)
	ctx := context.Background()

	flow, err := loginService.Start(ctx)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.Step != domain.LoginStepRoleSelection {
		t.Fatalf("expected ROLE_SELECTION, got %s", flow.Step)
	}

	flow, err = loginService.SelectRole(ctx, flow.ID, domain.RoleGuest)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.Step != domain.LoginStepGuestMobile {
		t.Fatalf("expected GUEST_MOBILE_INPUT, got %s", flow.Step)
	}

	flow, err = loginService.SubmitGuestMobile(ctx, flow.ID, "9876543210")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.Step != domain.LoginStepGuestOTP {
		t.Fatalf("expected GUEST_OTP_INPUT, got %s", flow.Step)
	}

	result, err := loginService.SubmitGuestOTP(ctx, flow.ID, testGuestOTP)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.Session.Role != domain.RoleGuest {
		t.Errorf("expected GUEST role, got %s", result.Session.Role)
	}
	if result.Session.Identifier != "9876543210" {
		t.Errorf("expected identifier 9876543210, got %s", result.Session.Identifier)
	}

	// The flow is consumed and the session is stored.
	if flows.GetFlow(flow.ID) != nil {
		t.Error("expected flow to be deleted after login")
	}
	stored, _ := sessions.Get(ctx, result.Token)
	if stored == nil {
		t.Fatal("expected session to be stored under the token")
	}
}

func TestGuestLogin_InvalidMobile_RejectedWithoutTransition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mobile string
	}{
		{name: "too short", mobile: "12345"},
		{name: "too long", mobile: "123456789012"},
		{name: "letters", mobile: "98765abcde"},
		{name: "empty", mobile: ""},
		{name: "with spaces", mobile: "98765 4321"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loginService, flows, _ := newLoginFixture(t)
			ctx := context.Background()

			flow, _ := loginService.Start(ctx)
			flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleGuest)

			_, err := loginService.SubmitGuestMobile(ctx, flow.ID, tc.mobile)
			if !errors.Is(err, service.ErrInvalidMobileNumber) {
				t.Fatalf("expected ErrInvalidMobileNumber, got: %v", err)
			}

			// The flow stays where it was.
			stored := flows.GetFlow(flow.ID)
			if stored.Step != domain.LoginStepGuestMobile {
				t.Errorf("expected flow to remain at GUEST_MOBILE_INPUT, got %s", stored.Step)
			}
		})
	}
}

func TestGuestLogin_WrongOTP_RejectedAndRetryable(t *testing.T) {
	t.Parallel()

	loginService, flows, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleGuest)
	flow, _ = loginService.SubmitGuestMobile(ctx, flow.ID, "9876543210")

	_, err := loginService.SubmitGuestOTP(ctx, flow.ID, "000000")
	if !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got: %v", err)
	}

	stored := flows.GetFlow(flow.ID)
	if stored == nil || stored.Step != domain.LoginStepGuestOTP {
		t.Fatal("expected flow to remain at GUEST_OTP_INPUT")
	}

	// The correct code still works afterwards.
	result, err := loginService.SubmitGuestOTP(ctx, flow.ID, testGuestOTP)
	if err != nil {
		t.Fatalf("expected retry to succeed, got: %v", err)
	}
	if result.Session.Role != domain.RoleGuest {
		t.Errorf("expected GUEST role, got %s", result.Session.Role)
	}
}

// ──────────────────────────────────────────────
// 2. ADMIN LOGIN PATHS
// ──────────────────────────────────────────────

func TestAdminLogin_EmailPath_CreatesAdminSession(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, err := loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.Step != domain.LoginStepAdmin || flow.AdminMethod != domain.AdminMethodChoice {
		t.Fatalf("expected ADMIN_LOGIN/CHOICE, got %s/%s", flow.Step, flow.AdminMethod)
	}

	flow, err = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodEmail)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	result, err := loginService.SubmitAdminEmail(ctx, flow.ID, testAdminEmail, testAdminPass)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Session.Role != domain.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", result.Session.Role)
	}
	if result.Session.Identifier != testAdminEmail {
		t.Errorf("expected identifier %s, got %s", testAdminEmail, result.Session.Identifier)
	}
}

func TestAdminLogin_WrongCredentials_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: testAdminEmail, password: "letmein"},
		{name: "unknown email", email: "someone@example.com", password: testAdminPass},
		{name: "both empty", email: "", password: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loginService, flows, _ := newLoginFixture(t)
			ctx := context.Background()

			flow, _ := loginService.Start(ctx)
			flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
			flow, _ = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodEmail)

			_, err := loginService.SubmitAdminEmail(ctx, flow.ID, tc.email, tc.password)
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
			}

			stored := flows.GetFlow(flow.ID)
			if stored.AdminMethod != domain.AdminMethodEmail {
				t.Errorf("expected flow to remain at EMAIL, got %s", stored.AdminMethod)
			}
		})
	}
}

func TestAdminLogin_MobilePath_CreatesAdminSession(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
	flow, _ = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodMobileInput)

	flow, err := loginService.SubmitAdminMobile(ctx, flow.ID, testAdminMobile)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.AdminMethod != domain.AdminMethodMobileOTP {
		t.Fatalf("expected MOBILE_OTP, got %s", flow.AdminMethod)
	}

	result, err := loginService.SubmitAdminOTP(ctx, flow.ID, testAdminOTP)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Session.Role != domain.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", result.Session.Role)
	}
	if result.Session.Identifier != testAdminMobile {
		t.Errorf("expected identifier %s, got %s", testAdminMobile, result.Session.Identifier)
	}
}

func TestAdminLogin_UnregisteredMobile_Rejected(t *testing.T) {
	t.Parallel()

	loginService, flows, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
	flow, _ = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodMobileInput)

	_, err := loginService.SubmitAdminMobile(ctx, flow.ID, "1234567890")
	if !errors.Is(err, auth.ErrMobileNotRegistered) {
		t.Fatalf("expected ErrMobileNotRegistered, got: %v", err)
	}

	stored := flows.GetFlow(flow.ID)
	if stored.AdminMethod != domain.AdminMethodMobileInput {
		t.Errorf("expected flow to remain at MOBILE_INPUT, got %s", stored.AdminMethod)
	}
}

// Guest OTP never unlocks the admin path, even for a registered number.
func TestAdminLogin_GuestOTP_Rejected(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
	flow, _ = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodMobileInput)
	flow, _ = loginService.SubmitAdminMobile(ctx, flow.ID, testAdminMobile)

	_, err := loginService.SubmitAdminOTP(ctx, flow.ID, testGuestOTP)
	if !errors.Is(err, service.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. STEP GUARDS AND BACK NAVIGATION
// ──────────────────────────────────────────────

func TestLogin_SubmissionAtWrongStep_Rejected(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)

	// Still at role selection; every later submission must be refused.
	if _, err := loginService.SubmitGuestMobile(ctx, flow.ID, "9876543210"); !errors.Is(err, service.ErrInvalidLoginStep) {
		t.Errorf("guest mobile: expected ErrInvalidLoginStep, got: %v", err)
	}
	if _, err := loginService.SubmitGuestOTP(ctx, flow.ID, testGuestOTP); !errors.Is(err, service.ErrInvalidLoginStep) {
		t.Errorf("guest otp: expected ErrInvalidLoginStep, got: %v", err)
	}
	if _, err := loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodEmail); !errors.Is(err, service.ErrInvalidLoginStep) {
		t.Errorf("admin method: expected ErrInvalidLoginStep, got: %v", err)
	}
	if _, err := loginService.SubmitAdminEmail(ctx, flow.ID, testAdminEmail, testAdminPass); !errors.Is(err, service.ErrInvalidLoginStep) {
		t.Errorf("admin email: expected ErrInvalidLoginStep, got: %v", err)
	}
}

func TestLogin_InvalidRole_Rejected(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	if _, err := loginService.SelectRole(ctx, flow.ID, domain.Role("SUPERUSER")); !errors.Is(err, service.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got: %v", err)
	}
}

func TestLogin_UnknownFlow_NotFound(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	if _, err := loginService.SelectRole(ctx, "no-such-flow", domain.RoleGuest); !errors.Is(err, service.ErrLoginFlowNotFound) {
		t.Fatalf("expected ErrLoginFlowNotFound, got: %v", err)
	}
	if _, err := loginService.Back(ctx, ""); !errors.Is(err, service.ErrLoginFlowNotFound) {
		t.Fatalf("expected ErrLoginFlowNotFound for empty id, got: %v", err)
	}
}

func TestLogin_Back_WalksOneStepAtATime(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	// Guest path: OTP -> mobile -> role selection.
	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleGuest)
	flow, _ = loginService.SubmitGuestMobile(ctx, flow.ID, "9876543210")

	flow, err := loginService.Back(ctx, flow.ID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if flow.Step != domain.LoginStepGuestMobile {
		t.Fatalf("expected GUEST_MOBILE_INPUT, got %s", flow.Step)
	}

	flow, _ = loginService.Back(ctx, flow.ID)
	if flow.Step != domain.LoginStepRoleSelection {
		t.Fatalf("expected ROLE_SELECTION, got %s", flow.Step)
	}

	// Backing out of role selection is refused.
	if _, err := loginService.Back(ctx, flow.ID); !errors.Is(err, service.ErrInvalidLoginStep) {
		t.Fatalf("expected ErrInvalidLoginStep, got: %v", err)
	}
}

func TestLogin_Back_AdminSubStates(t *testing.T) {
	t.Parallel()

	loginService, _, _ := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleAdmin)
	flow, _ = loginService.SelectAdminMethod(ctx, flow.ID, domain.AdminMethodMobileInput)
	flow, _ = loginService.SubmitAdminMobile(ctx, flow.ID, testAdminMobile)

	// MOBILE_OTP -> MOBILE_INPUT -> CHOICE -> ROLE_SELECTION.
	flow, _ = loginService.Back(ctx, flow.ID)
	if flow.AdminMethod != domain.AdminMethodMobileInput {
		t.Fatalf("expected MOBILE_INPUT, got %s", flow.AdminMethod)
	}

	flow, _ = loginService.Back(ctx, flow.ID)
	if flow.AdminMethod != domain.AdminMethodChoice {
		t.Fatalf("expected CHOICE, got %s", flow.AdminMethod)
	}

	flow, _ = loginService.Back(ctx, flow.ID)
	if flow.Step != domain.LoginStepRoleSelection {
		t.Fatalf("expected ROLE_SELECTION, got %s", flow.Step)
	}
	if flow.AdminMethod != "" {
		t.Errorf("expected admin method to be cleared, got %s", flow.AdminMethod)
	}
}

// ──────────────────────────────────────────────
// 4. LOGOUT
// ──────────────────────────────────────────────

func TestLogout_DeletesSession(t *testing.T) {
	t.Parallel()

	loginService, _, sessions := newLoginFixture(t)
	ctx := context.Background()

	flow, _ := loginService.Start(ctx)
	flow, _ = loginService.SelectRole(ctx, flow.ID, domain.RoleGuest)
	flow, _ = loginService.SubmitGuestMobile(ctx, flow.ID, "9876543210")
	result, _ := loginService.SubmitGuestOTP(ctx, flow.ID, testGuestOTP)

	if err := loginService.Logout(ctx, result.Token); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	stored, _ := sessions.Get(ctx, result.Token)
	if stored != nil {
		t.Error("expected session to be deleted")
	}
}
