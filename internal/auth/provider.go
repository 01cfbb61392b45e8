package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when an admin email/password pair
	// does not match the allow-list.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrMobileNotRegistered is returned when a mobile number is not
	// registered for admin access.
	ErrMobileNotRegistered = errors.New("mobile number not registered for admin access")
)

// Provider is the authentication backend for the login flow. The flow state
// machine never inspects credentials itself; a real provider can be swapped
// in without touching the flow.
type Provider interface {
	// IssueGuestOTP issues a one-time code for the given guest mobile number.
	IssueGuestOTP(ctx context.Context, mobile string) (string, error)

	// VerifyAdminCredentials checks an email/password pair against the
	// admin allow-list.
	VerifyAdminCredentials(ctx context.Context, email, password string) error

	// IssueAdminOTP issues a one-time code for an allow-listed admin mobile.
	IssueAdminOTP(ctx context.Context, mobile string) (string, error)
}

// FixedProvider is the simulated provider: fixed OTP codes and a hardcoded
// admin allow-list. Passwords are kept as bcrypt hashes even though the
// source values are fixtures.
type FixedProvider struct {
	guestOTP     string
	adminOTP     string
	adminHashes  map[string][]byte // email -> bcrypt hash
	adminMobiles map[string]struct{}
}

// Ensure FixedProvider implements Provider.
var _ Provider = (*FixedProvider)(nil)

// NewFixedProvider creates a fixed provider from the configured fixtures.
// admins maps email to plaintext password; hashes are derived here so no
// plaintext is retained.
func NewFixedProvider(admins map[string]string, adminMobiles []string, guestOTP, adminOTP string) (*FixedProvider, error) {
	hashes := make(map[string][]byte, len(admins))
	for email, password := range admins {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashes[email] = hash
	}

	mobiles := make(map[string]struct{}, len(adminMobiles))
	for _, m := range adminMobiles {
		mobiles[m] = struct{}{}
	}

	return &FixedProvider{
		guestOTP:     guestOTP,
		adminOTP:     adminOTP,
		adminHashes:  hashes,
		adminMobiles: mobiles,
	}, nil
}

// IssueGuestOTP returns the fixed guest code for any mobile number.
func (p *FixedProvider) IssueGuestOTP(ctx context.Context, mobile string) (string, error) {
	return p.guestOTP, nil
}

// VerifyAdminCredentials checks the pair against the allow-list.
func (p *FixedProvider) VerifyAdminCredentials(ctx context.Context, email, password string) error {
	hash, ok := p.adminHashes[email]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueAdminOTP returns the fixed admin code for allow-listed numbers.
func (p *FixedProvider) IssueAdminOTP(ctx context.Context, mobile string) (string, error) {
	if _, ok := p.adminMobiles[mobile]; !ok {
		return "", ErrMobileNotRegistered
	}
	return p.adminOTP, nil
}
