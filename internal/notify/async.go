package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultSendTimeout bounds a single asynchronous delivery.
const DefaultSendTimeout = 30 * time.Second

// Async hands each message to next on its own goroutine so callers are not
// blocked on mail delivery. Failures are logged and reported to OnFailure;
// they never reach the caller.
type Async struct {
	next      Notifier
	timeout   time.Duration
	logger    *slog.Logger
	onFailure func(subject string, err error)
	wg        sync.WaitGroup
}

// NewAsync wraps next. onFailure may be nil.
func NewAsync(next Notifier, logger *slog.Logger, onFailure func(subject string, err error)) *Async {
	if logger == nil {
		logger = slog.Default()
	}
	return &Async{next: next, timeout: DefaultSendTimeout, logger: logger, onFailure: onFailure}
}

// SendOTPEmail schedules delivery and returns nil immediately. Request
// cancellation does not abort an in-flight send; values such as trace context are kept.
func (a *Async) SendOTPEmail(ctx context.Context, to, subject, otp string) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		if err := a.next.SendOTPEmail(sendCtx, to, subject, otp); err != nil {
			a.logger.ErrorContext(sendCtx, "otp email delivery failed", "to", to, "subject", subject, "error", err)
			if a.onFailure != nil {
				a.onFailure(subject, err)
			}
		}
	}()
	return nil
}

// Wait blocks until all scheduled deliveries finish or ctx is done.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
