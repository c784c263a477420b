// Package progress consumes the backend generation WebSocket stream.
//
// The backend publishes article generation progress on
// wss://{host}/ws/generation/{taskId}/ as JSON events carrying a step
// number (1 to 9), a percentage and an optional terminal error. A watch
// opens exactly one connection for one task and ends on completion,
// failure, stream loss or context cancellation. It never reconnects;
// callers decide whether a lost stream is worth a fresh watch.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/observability/metrics"
)

// Terminal watch errors.
var (
	// ErrGenerationFailed wraps the error message of a failed task.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStreamClosed reports a stream that ended before the task
	// reached the final step at full progress.
	ErrStreamClosed = errors.New("progress stream closed before completion")
)

const (
	defaultHandshakeTimeout = 10 * time.Second

	// defaultStallTimeout bounds the wait for the next event. Generation
	// runs for minutes but the backend emits an event at least once per
	// step, so a long silence means the task runner is gone.
	defaultStallTimeout = 2 * time.Minute
)

// Watcher follows generation progress streams.
type Watcher struct {
	cfg          *config.BackendConfig
	dialer       *websocket.Dialer
	logger       *slog.Logger
	stallTimeout time.Duration
}

// NewWatcher creates a progress watcher for the configured backend.
func NewWatcher(cfg *config.BackendConfig, logger *slog.Logger) *Watcher {
	return &Watcher{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: defaultHandshakeTimeout,
		},
		logger:       logger,
		stallTimeout: defaultStallTimeout,
	}
}

// SetStallTimeout overrides the per-event read deadline.
func (w *Watcher) SetStallTimeout(d time.Duration) {
	if d > 0 {
		w.stallTimeout = d
	}
}

// Watch opens one connection to the progress stream of taskID and calls
// onEvent for every received event, in stream order. It blocks until a
// terminal condition and returns the last event seen:
//
//   - the task completes: the event reports the final step at progress
//     100 or more, and the returned error is nil. Full progress on an
//     earlier step only finishes that step and keeps the watch open.
//   - the task fails: the event carries an error message and the
//     returned error wraps ErrGenerationFailed.
//   - the stream drops or stalls: the error wraps ErrStreamClosed.
//   - ctx ends: the error is ctx.Err().
//
// onEvent runs on the watching goroutine; a slow consumer slows the
// stream down rather than losing events. onEvent may be nil.
func (w *Watcher) Watch(ctx context.Context, taskID string, onEvent func(entity.ProgressEvent)) (*entity.ProgressEvent, error) {
	if taskID == "" {
		return nil, fmt.Errorf("%w: task id is empty", entity.ErrInvalidInput)
	}

	wsURL, err := w.cfg.WebSocketURL(taskID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	conn, resp, err := w.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		metrics.RecordGenerationWatch(metrics.WatchFailed, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: dial progress stream: %v", entity.ErrBackendUnavailable, err)
	}

	w.logger.Debug("progress stream opened",
		slog.String("task_id", taskID),
	)

	last, err := w.follow(ctx, conn, taskID, onEvent)

	outcome := metrics.WatchCompleted
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = metrics.WatchCancelled
	case err != nil:
		outcome = metrics.WatchFailed
	}
	metrics.RecordGenerationWatch(outcome, time.Since(start))

	return last, err
}

// follow reads the stream until a terminal event or error. A single
// reader goroutine owns all reads; the deferred teardown closes the
// connection to unblock it and waits for it to finish, so no goroutine
// outlives the watch.
func (w *Watcher) follow(ctx context.Context, conn *websocket.Conn, taskID string, onEvent func(entity.ProgressEvent)) (*entity.ProgressEvent, error) {
	events := make(chan entity.ProgressEvent)
	readErr := make(chan error, 1)

	readCtx, stopReader := context.WithCancel(ctx)

	defer func() {
		stopReader()
		_ = conn.Close()
		for range events {
		}
	}()

	go func() {
		defer close(events)
		for {
			if err := conn.SetReadDeadline(time.Now().Add(w.stallTimeout)); err != nil {
				readErr <- err
				return
			}
			var ev entity.ProgressEvent
			if err := conn.ReadJSON(&ev); err != nil {
				readErr <- err
				return
			}
			select {
			case events <- ev:
			case <-readCtx.Done():
				return
			}
		}
	}()

	var last *entity.ProgressEvent
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()

		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return last, ctx.Err()
				}
				return last, fmt.Errorf("%w: %v", ErrStreamClosed, <-readErr)
			}

			last = &ev
			w.logger.Debug("generation progress",
				slog.String("task_id", taskID),
				slog.Int("step", ev.Step),
				slog.String("step_name", ev.StepName()),
				slog.Int("progress", ev.Progress),
			)
			if onEvent != nil {
				onEvent(ev)
			}

			if ev.Failed() {
				return last, fmt.Errorf("%w: %s", ErrGenerationFailed, ev.Error)
			}
			if ev.Done() {
				return last, nil
			}
		}
	}
}
