package domain

import (
	"crypto/subtle"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Update when no account has the given id.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned by Create when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrStaleWrite is returned by Update when Patch.ExpectRefreshTokenHash no longer matches.
	ErrStaleWrite = errors.New("account changed since it was read")
)

// Role is the authorization role of an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// OTPPair is a pending one-time code and the instant it stops being valid.
// A nil *OTPPair means no code is pending, so code and expiry are always set together.
type OTPPair struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer valid at now. Validity is strict:
// a code is usable only while now is before ExpiresAt.
func (p *OTPPair) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// Matches compares code against the pending code in constant time.
func (p *OTPPair) Matches(code string) bool {
	if code == "" || p.Code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(p.Code)) == 1
}

// Account is a registered end user.
type Account struct {
	ID            string
	Email         string
	UserName      string // optional
	Phone         string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	EmailOTP      *OTPPair
	ResetOTP      *OTPPair
	// RefreshTokenHash is empty exactly when no session is active.
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	if !a.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}

// HasActiveSession reports whether a refresh token is currently outstanding.
func (a *Account) HasActiveSession() bool {
	return a.RefreshTokenHash != ""
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	c := *a
	if a.EmailOTP != nil {
		p := *a.EmailOTP
		c.EmailOTP = &p
	}
	if a.ResetOTP != nil {
		p := *a.ResetOTP
		c.ResetOTP = &p
	}
	return &c
}
