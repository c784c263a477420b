package notifier

import (
	"context"
	"log/slog"
	"time"
)

// Async detaches delivery from the caller. Notify hands the event to a
// goroutine and returns nil right away; the wrapped notifier runs under
// its own timeout and failures are logged rather than returned. Call
// sites fire events from request handlers, which must not wait out a
// webhook retry cycle.
type Async struct {
	next    Notifier
	timeout time.Duration
	logger  *slog.Logger
}

// NewAsync wraps next with detached delivery. The timeout bounds one
// event end to end, retries and rate limiter waits included.
func NewAsync(next Notifier, timeout time.Duration, logger *slog.Logger) *Async {
	return &Async{next: next, timeout: timeout, logger: logger}
}

// Notify always returns nil. Delivery keeps the values of ctx (trace
// metadata) but not its cancellation: the originating request finishing
// must not abort the webhook call.
func (a *Async) Notify(ctx context.Context, ev Event) error {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	go func() {
		defer cancel()
		if err := a.next.Notify(dctx, ev); err != nil {
			a.logger.Error("event notification failed",
				slog.String("kind", string(ev.Kind)),
				slog.String("title", ev.Title),
				slog.Any("error", err))
		}
	}()
	return nil
}
