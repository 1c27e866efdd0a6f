// Package telemetry emits account lifecycle events. Emission is best-effort and
// never affects the outcome of the operation that produced the event.
package telemetry

import (
	"context"
	"time"
)

// Account lifecycle event types.
const (
	EventSignup                 = "account.signup"
	EventEmailVerified          = "account.email_verified"
	EventLoginSucceeded         = "account.login_succeeded"
	EventLoginFailed            = "account.login_failed"
	EventTokensRefreshed        = "account.tokens_refreshed"
	EventRefreshRejected        = "account.refresh_rejected"
	EventLogout                 = "account.logout"
	EventPasswordResetRequested = "account.password_reset_requested"
	EventPasswordReset          = "account.password_reset"
	EventPasswordChanged        = "account.password_changed"
)

// Event is a single account lifecycle event.
type Event struct {
	Type       string
	AccountID  string
	Source     string
	Attributes map[string]string
	CreatedAt  time.Time
}

// EventEmitter emits events (e.g. to OTel Logs). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *Event) error
}
