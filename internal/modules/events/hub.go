package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a lifecycle notification pushed to connected manager/admin
// dashboards. Delivery is fire-and-forget: a failed write drops the
// connection, never the state transition that produced the event.
type Event struct {
	Type     string         `json:"type"`
	EntityID int64          `json:"entity_id"`
	Payload  map[string]any `json:"payload,omitempty"`
	At       time.Time      `json:"at"`
}

const (
	TypeApplicationSubmitted = "application.submitted"
	TypeApplicationReviewed  = "application.reviewed"
	TypeBookingCreated       = "booking.created"
	TypeBookingTransitioned  = "booking.transitioned"
	TypeDisputeOpened        = "dispute.opened"
)

// subscriber serializes writes to a single connection. gorilla/websocket
// allows at most one concurrent writer per Conn, and Broadcast may run
// from several request goroutines at once.
type subscriber struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *subscriber) send(ev Event) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteJSON(ev)
}

type Hub struct {
	subscribers map[int64]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]*subscriber),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.subscribers[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.subscribers[userID] = &subscriber{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if sub, exists := h.subscribers[userID]; exists && sub != nil {
		_ = sub.conn.Close()
		delete(h.subscribers, userID)
	}
}

// Broadcast fans the event out to every connected dashboard.
func (h *Hub) Broadcast(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	h.mutex.RLock()
	subs := make(map[int64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mutex.RUnlock()

	for userID, sub := range subs {
		if sub == nil {
			continue
		}
		if err := sub.send(ev); err != nil {
			h.Unregister(userID)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, sub := range h.subscribers {
		if sub != nil {
			_ = sub.conn.Close()
		}
		delete(h.subscribers, userID)
	}
}
