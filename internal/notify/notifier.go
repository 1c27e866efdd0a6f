// Package notify delivers one-time codes to account holders.
package notify

import "context"

// Subjects used for OTP emails.
const (
	SubjectVerifyEmail   = "Verify your email"
	SubjectResetPassword = "Reset your password"
)

// Notifier sends an OTP email. Implementations must not log the code.
type Notifier interface {
	SendOTPEmail(ctx context.Context, to, subject, otp string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, to, subject, otp string) error

func (f NotifierFunc) SendOTPEmail(ctx context.Context, to, subject, otp string) error {
	return f(ctx, to, subject, otp)
}

// Purpose returns a short metric label for an OTP email subject.
func Purpose(subject string) string {
	switch subject {
	case SubjectVerifyEmail:
		return "verify_email"
	case SubjectResetPassword:
		return "reset_password"
	default:
		return "other"
	}
}
