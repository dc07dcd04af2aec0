package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/gorilla/websocket"

	"cityverse/internal/app/ports"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	pongWait     = 60 * time.Second
	pingEvery    = 25 * time.Second
)

// Hub fans published events out to websocket subscribers of the owning
// session. A subscriber that cannot keep up is dropped.
type Hub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	sessionID string
	send      chan []byte

	mu     sync.Mutex
	closed bool
}

// offer reports false when the buffer is full. Sends after close are ignored.
func (s *subscriber) offer(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.send <- b:
		return true
	default:
		return false
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: map[string]map[*subscriber]struct{}{},
	}
}

var _ ports.EventPublisher = (*Hub)(nil)

func (h *Hub) Publish(ctx context.Context, events []ports.OutputEvent) error {
	if len(events) == 0 {
		return nil
	}
	bySession := map[string][]ports.OutputEvent{}
	order := []string{}
	for _, ev := range events {
		if _, ok := bySession[ev.SessionID]; !ok {
			order = append(order, ev.SessionID)
		}
		bySession[ev.SessionID] = append(bySession[ev.SessionID], ev)
	}

	for _, sessionID := range order {
		targets := h.subscribers(sessionID)
		if len(targets) == 0 {
			continue
		}
		payload, err := json.Marshal(bySession[sessionID])
		if err != nil {
			return err
		}
		for _, sub := range targets {
			if !sub.offer(payload) {
				hlog.CtxWarnf(ctx, "event subscriber too slow, dropping session=%s", sessionID)
				h.remove(sub)
			}
		}
	}
	return nil
}

// Subscribers reports the live subscriber count for a session.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}

func (h *Hub) subscribers(sessionID string) []*subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[sessionID]
	out := make([]*subscriber, 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	return out
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.sessionID]
	if !ok {
		set = map[*subscriber]struct{}{}
		h.subs[sub.sessionID] = set
	}
	set[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.sessionID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.sessionID)
		}
	}
	h.mu.Unlock()
	sub.close()
}

// Handler upgrades GET /events?session_id=... to a websocket stream. Each
// message is a JSON array of events for that session.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
		if sessionID == "" {
			http.Error(rw, "session_id is required", http.StatusBadRequest)
			return
		}

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub := &subscriber{sessionID: sessionID, send: make(chan []byte, sendBuffer)}
		h.add(sub)
		defer h.remove(sub)

		done := make(chan struct{})
		go func() {
			defer close(done)
			writeLoop(conn, sub.send)
			_ = conn.Close()
		}()

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.remove(sub)
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func writeLoop(conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingEvery)
	defer ticker.Stop()
	for {
		select {
		case b, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
