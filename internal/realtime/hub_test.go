package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wealthtracker/internal/dashboard"
)

type fakeBuilder struct {
	calls atomic.Int64
	err   error
	// hold, when set, runs before build n returns.
	hold func(n int64)
}

func (b *fakeBuilder) GetDashboard(_ context.Context, _ string) (*dashboard.View, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := b.calls.Add(1)
	if b.hold != nil {
		b.hold(n)
	}
	return &dashboard.View{NetWorth: decimal.NewFromInt(n * 1000)}, nil
}

func startServer(t *testing.T, hub *Hub, userID string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(r.Context(), userID, conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func readView(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub(t *testing.T) {
	t.Run("initial_view_then_refresh", func(t *testing.T) {
		builder := &fakeBuilder{}
		hub := NewHub(builder, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-1"))
		defer conn.Close()

		first := readView(t, conn)
		if first.Type != MessageTypeDashboard {
			t.Errorf("type = %q, want %q", first.Type, MessageTypeDashboard)
		}
		if !first.Data.NetWorth.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("initial net worth = %s, want 1000", first.Data.NetWorth)
		}

		if err := hub.Refresh(context.Background(), "user-1"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		second := readView(t, conn)
		if !second.Data.NetWorth.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("refreshed net worth = %s, want 2000", second.Data.NetWorth)
		}

		latest, ok := hub.Latest("user-1")
		if !ok || !latest.NetWorth.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected latest view to be cached, got %v", latest)
		}
	})

	t.Run("notify_change_pushes_update", func(t *testing.T) {
		builder := &fakeBuilder{}
		hub := NewHub(builder, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-2"))
		defer conn.Close()
		readView(t, conn)

		hub.NotifyChange("user-2")
		msg := readView(t, conn)
		if !msg.Data.NetWorth.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("net worth = %s, want 2000", msg.Data.NetWorth)
		}
	})

	t.Run("slow_build_does_not_replace_newer_view", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		builder := &fakeBuilder{hold: func(n int64) {
			if n == 2 {
				close(entered)
				<-release
			}
		}}
		hub := NewHub(builder, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-5"))
		defer conn.Close()
		readView(t, conn)

		slow := make(chan error, 1)
		go func() { slow <- hub.Refresh(context.Background(), "user-5") }()
		<-entered

		if err := hub.Refresh(context.Background(), "user-5"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		fresh := readView(t, conn)
		if !fresh.Data.NetWorth.Equal(decimal.NewFromInt(3000)) {
			t.Fatalf("net worth = %s, want 3000", fresh.Data.NetWorth)
		}

		close(release)
		if err := <-slow; err != nil {
			t.Fatalf("slow refresh failed: %v", err)
		}

		latest, ok := hub.Latest("user-5")
		if !ok || !latest.NetWorth.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("latest view = %v, want net worth 3000", latest)
		}
		_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		var stale Message
		if err := conn.ReadJSON(&stale); err == nil {
			t.Errorf("unexpected stale push with net worth %s", stale.Data.NetWorth)
		}
	})

	t.Run("publish_keeps_newest_view", func(t *testing.T) {
		builder := &fakeBuilder{}
		hub := NewHub(builder, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-6"))
		defer conn.Close()
		readView(t, conn)

		hub.Publish("user-6", &dashboard.View{NetWorth: decimal.NewFromInt(42)})
		msg := readView(t, conn)
		if !msg.Data.NetWorth.Equal(decimal.NewFromInt(42)) {
			t.Errorf("net worth = %s, want 42", msg.Data.NetWorth)
		}
		if latest, _ := hub.Latest("user-6"); !latest.NetWorth.Equal(decimal.NewFromInt(42)) {
			t.Errorf("latest net worth = %s, want 42", latest.NetWorth)
		}
	})

	t.Run("refresh_without_subscribers_is_noop", func(t *testing.T) {
		builder := &fakeBuilder{}
		hub := NewHub(builder, zap.NewNop().Sugar())

		if err := hub.Refresh(context.Background(), "nobody"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if builder.calls.Load() != 0 {
			t.Errorf("builder should not run without subscribers, ran %d times", builder.calls.Load())
		}
	})

	t.Run("client_close_unregisters", func(t *testing.T) {
		hub := NewHub(&fakeBuilder{}, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-3"))
		readView(t, conn)
		waitFor(t, func() bool { return hub.Subscribers("user-3") == 1 })

		conn.Close()
		waitFor(t, func() bool { return hub.Subscribers("user-3") == 0 })
		if _, ok := hub.Latest("user-3"); ok {
			t.Error("expected cached view to be dropped with the last client")
		}
	})

	t.Run("build_failure_closes_connection", func(t *testing.T) {
		hub := NewHub(&fakeBuilder{err: errors.New("db down")}, zap.NewNop().Sugar())
		conn := dial(t, startServer(t, hub, "user-4"))
		defer conn.Close()

		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if _, _, err := conn.ReadMessage(); err == nil {
			t.Error("expected connection to be closed")
		}
	})
}
