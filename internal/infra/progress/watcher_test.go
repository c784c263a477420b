package progress

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newWatchServer starts a WebSocket test server running script against
// every accepted generation stream connection, and a watcher pointed at it.
func newWatchServer(t *testing.T, script func(*websocket.Conn)) (*Watcher, *httptest.Server, *atomic.Int32) {
	t.Helper()

	var dials atomic.Int32
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/ws/generation/") {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		dials.Add(1)
		script(conn)
	}))

	cfg := &config.BackendConfig{PublicBaseURL: srv.URL}
	watcher := NewWatcher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return watcher, srv, &dials
}

// waitForPeerClose blocks until the watcher side closes the connection,
// so the test server handler does not outlive the request.
func waitForPeerClose(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func TestWatch_CompletesOnlyAtFinalStep(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		// Full progress on intermediate steps must not end the watch.
		for step := 1; step <= 9; step++ {
			ev := entity.ProgressEvent{Step: step, Progress: 100, Message: "step done"}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
		waitForPeerClose(conn)
	})
	defer srv.Close()

	var seen []entity.ProgressEvent
	last, err := watcher.Watch(context.Background(), "task-123", func(ev entity.ProgressEvent) {
		seen = append(seen, ev)
	})
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	if last == nil || last.Step != 9 || last.Progress != 100 {
		t.Fatalf("expected final event step 9 progress 100, got %+v", last)
	}
	if len(seen) != 9 {
		t.Errorf("expected all 9 events delivered, got %d", len(seen))
	}
	for i, ev := range seen {
		if ev.Step != i+1 {
			t.Errorf("event %d: expected step %d, got %d", i, i+1, ev.Step)
		}
	}
}

func TestWatch_FinalStepBelowFullProgressKeepsWatching(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 9, Progress: 80, Message: "publishing"})
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 9, Progress: 100, Message: "published", ArticleID: 42})
		waitForPeerClose(conn)
	})
	defer srv.Close()

	var count int
	last, err := watcher.Watch(context.Background(), "task-123", func(entity.ProgressEvent) {
		count++
	})
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 events before completion, got %d", count)
	}
	if last.ArticleID != 42 {
		t.Errorf("expected article id 42 on final event, got %d", last.ArticleID)
	}
}

func TestWatch_FailureEventEndsWatch(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 2, Progress: 40, Message: "fetching"})
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 3, Progress: 10, Error: "source returned 404"})
		waitForPeerClose(conn)
	})
	defer srv.Close()

	last, err := watcher.Watch(context.Background(), "task-123", nil)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "source returned 404") {
		t.Errorf("expected backend error message in %q", err.Error())
	}
	if last == nil || last.Step != 3 {
		t.Errorf("expected last event step 3, got %+v", last)
	}
}

func TestWatch_StreamClosedBeforeCompletion(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 1, Progress: 100})
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 2, Progress: 50})
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	})
	defer srv.Close()

	last, err := watcher.Watch(context.Background(), "task-123", nil)
	if !errors.Is(err, ErrStreamClosed) {
		t.Fatalf("expected ErrStreamClosed, got %v", err)
	}
	if last == nil || last.Step != 2 {
		t.Errorf("expected last event step 2, got %+v", last)
	}
}

func TestWatch_StallTimeout(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 1, Progress: 10})
		// Then go silent until the watcher gives up.
		waitForPeerClose(conn)
	})
	defer srv.Close()

	watcher.SetStallTimeout(50 * time.Millisecond)

	_, err := watcher.Watch(context.Background(), "task-123", nil)
	if !errors.Is(err, ErrStreamClosed) {
		t.Fatalf("expected ErrStreamClosed on stalled stream, got %v", err)
	}
}

func TestWatch_ContextCancellation(t *testing.T) {
	watcher, srv, _ := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 1, Progress: 10})
		waitForPeerClose(conn)
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	gotFirst := make(chan struct{})
	go func() {
		<-gotFirst
		cancel()
	}()

	var once bool
	_, err := watcher.Watch(ctx, "task-123", func(entity.ProgressEvent) {
		if !once {
			once = true
			close(gotFirst)
		}
	})
	cancel()
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWatch_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := &config.BackendConfig{PublicBaseURL: srv.URL}
	srv.Close()

	watcher := NewWatcher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := watcher.Watch(context.Background(), "task-123", nil)
	if !errors.Is(err, entity.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestWatch_EmptyTaskID(t *testing.T) {
	cfg := &config.BackendConfig{PublicBaseURL: "http://localhost:8000"}
	watcher := NewWatcher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := watcher.Watch(context.Background(), "", nil)
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWatch_OpensExactlyOneConnection(t *testing.T) {
	watcher, srv, dials := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 9, Progress: 100})
		waitForPeerClose(conn)
	})
	defer srv.Close()

	if _, err := watcher.Watch(context.Background(), "task-123", nil); err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	if got := dials.Load(); got != 1 {
		t.Errorf("expected exactly 1 connection, got %d", got)
	}
}

func TestWatch_DoesNotReconnectAfterFailure(t *testing.T) {
	watcher, srv, dials := newWatchServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteJSON(entity.ProgressEvent{Step: 4, Progress: 0, Error: "translation failed"})
		waitForPeerClose(conn)
	})
	defer srv.Close()

	_, err := watcher.Watch(context.Background(), "task-123", nil)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if got := dials.Load(); got != 1 {
		t.Errorf("expected no reconnect after failure, got %d dials", got)
	}
}
