package notify

import (
	"context"
	"log/slog"
	"time"

	"account-auth/internal/devotp"
)

// DevNotifier keeps OTPs in a devotp.Store instead of sending mail, so they can
// be read back through DevService/GetOTP. Dev mode only.
type DevNotifier struct {
	store devotp.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewDevNotifier returns a DevNotifier that keeps each code for ttl.
func NewDevNotifier(store devotp.Store, ttl time.Duration) *DevNotifier {
	return &DevNotifier{store: store, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (n *DevNotifier) SendOTPEmail(ctx context.Context, to, subject, otp string) error {
	if err := n.store.Put(ctx, to, otp, n.now().Add(n.ttl)); err != nil {
		return err
	}
	slog.InfoContext(ctx, "dev otp stored", "to", to, "subject", subject)
	return nil
}

// Discard drops every message. Used when no mail host is configured.
type Discard struct {
	Logger *slog.Logger
}

func (d Discard) SendOTPEmail(ctx context.Context, to, subject, _ string) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "otp email dropped: no mail host configured", "to", to, "subject", subject)
	return nil
}
