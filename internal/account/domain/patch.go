package domain

import "time"

// Patch is a partial account update. Nil fields are left untouched.
type Patch struct {
	PasswordHash  *string
	EmailVerified *bool

	// EmailOTP replaces the pending verification code; ClearEmailOTP removes it.
	EmailOTP      *OTPPair
	ClearEmailOTP bool
	// ResetOTP replaces the pending reset code; ClearResetOTP removes it.
	ResetOTP      *OTPPair
	ClearResetOTP bool

	// RefreshTokenHash sets the active session digest. A pointer to "" ends the session.
	RefreshTokenHash *string
	// ExpectRefreshTokenHash makes the update conditional on the stored digest
	// still equal to this value. A mismatch yields ErrStaleWrite.
	ExpectRefreshTokenHash *string
}

// Apply writes the patch onto a and stamps UpdatedAt.
func (p Patch) Apply(a *Account, now time.Time) {
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	if p.EmailVerified != nil {
		a.EmailVerified = *p.EmailVerified
	}
	switch {
	case p.ClearEmailOTP:
		a.EmailOTP = nil
	case p.EmailOTP != nil:
		pair := *p.EmailOTP
		a.EmailOTP = &pair
	}
	switch {
	case p.ClearResetOTP:
		a.ResetOTP = nil
	case p.ResetOTP != nil:
		pair := *p.ResetOTP
		a.ResetOTP = &pair
	}
	if p.RefreshTokenHash != nil {
		a.RefreshTokenHash = *p.RefreshTokenHash
	}
	a.UpdatedAt = now
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.PasswordHash == nil && p.EmailVerified == nil &&
		p.EmailOTP == nil && !p.ClearEmailOTP &&
		p.ResetOTP == nil && !p.ClearResetOTP &&
		p.RefreshTokenHash == nil
}
