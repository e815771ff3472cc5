// Package realtime pushes dashboard updates to connected WebSocket clients.
package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wealthtracker/internal/dashboard"
)

const (
	writeTimeout   = 10 * time.Second
	refreshTimeout = 15 * time.Second

	// MessageTypeDashboard tags a full dashboard view-model.
	MessageTypeDashboard = "dashboard"
)

// Builder produces a user's current dashboard.
type Builder interface {
	GetDashboard(ctx context.Context, userID string) (*dashboard.View, error)
}

// Message is the envelope for everything written to a client.
type Message struct {
	Type string          `json:"type"`
	Data *dashboard.View `json:"data"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
	sent uint64
}

// writeView sends view unless the client already received one built at or
// after seq.
func (c *client) writeView(seq uint64, view *dashboard.View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.sent {
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(Message{Type: MessageTypeDashboard, Data: view}); err != nil {
		return err
	}
	c.sent = seq
	return nil
}

type versionedView struct {
	seq  uint64
	view *dashboard.View
}

// Hub tracks each user's open connections and the last view pushed to them.
// Every build is stamped with a sequence number taken before it starts, so a
// slow build never replaces a view that was started after it.
type Hub struct {
	builder Builder
	log     *zap.SugaredLogger
	seq     atomic.Uint64

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	latest  map[string]versionedView
}

// NewHub creates a Hub that rebuilds views with builder.
func NewHub(builder Builder, log *zap.SugaredLogger) *Hub {
	return &Hub{
		builder: builder,
		log:     log,
		clients: make(map[string]map[*client]struct{}),
		latest:  make(map[string]versionedView),
	}
}

func (h *Hub) add(userID string, conn *websocket.Conn) *client {
	c := &client{conn: conn}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) remove(userID string, c *client) {
	h.mu.Lock()
	if set, ok := h.clients[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
			delete(h.latest, userID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Subscribers returns the number of open connections for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Latest returns the last view pushed to userID, if any.
func (h *Hub) Latest(userID string) (*dashboard.View, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.latest[userID]
	return v.view, ok
}

// Publish stores view as the user's latest and writes it to every open
// connection. Connections that fail the write are dropped.
func (h *Hub) Publish(userID string, view *dashboard.View) {
	h.publish(userID, h.seq.Add(1), view)
}

// store records view as the user's latest unless a newer one is already
// held, and returns whichever is current.
func (h *Hub) store(userID string, seq uint64, view *dashboard.View) versionedView {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.latest[userID]; ok && cur.seq >= seq {
		return cur
	}
	v := versionedView{seq: seq, view: view}
	h.latest[userID] = v
	return v
}

func (h *Hub) publish(userID string, seq uint64, view *dashboard.View) {
	h.mu.RLock()
	set := h.clients[userID]
	clients := make([]*client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	if len(clients) == 0 {
		return
	}

	current := h.store(userID, seq, view)
	if current.seq != seq {
		return
	}
	for _, c := range clients {
		if err := c.writeView(seq, view); err != nil {
			h.log.Debugw("dropping websocket client", "user_id", userID, "error", err)
			h.remove(userID, c)
		}
	}
}

// Refresh rebuilds userID's dashboard and publishes it. Users with no open
// connection are skipped. A result that finishes after a newer build is
// discarded.
func (h *Hub) Refresh(ctx context.Context, userID string) error {
	if h.Subscribers(userID) == 0 {
		return nil
	}
	seq := h.seq.Add(1)
	view, err := h.builder.GetDashboard(ctx, userID)
	if err != nil {
		return err
	}
	h.publish(userID, seq, view)
	return nil
}

// NotifyChange schedules a refresh for userID without blocking the caller.
func (h *Hub) NotifyChange(userID string) {
	if h.Subscribers(userID) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := h.Refresh(ctx, userID); err != nil {
			h.log.Errorw("failed to refresh dashboard", "user_id", userID, "error", err)
		}
	}()
}

// Serve registers conn for userID, sends the current view and then blocks
// reading until the client goes away. Incoming messages are ignored.
func (h *Hub) Serve(ctx context.Context, userID string, conn *websocket.Conn) {
	c := h.add(userID, conn)
	defer h.remove(userID, c)

	h.mu.RLock()
	current, ok := h.latest[userID]
	h.mu.RUnlock()
	if !ok {
		seq := h.seq.Add(1)
		built, err := h.builder.GetDashboard(ctx, userID)
		if err != nil {
			h.log.Errorw("failed to build initial dashboard", "user_id", userID, "error", err)
			return
		}
		current = h.store(userID, seq, built)
	}
	if err := c.writeView(current.seq, current.view); err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
