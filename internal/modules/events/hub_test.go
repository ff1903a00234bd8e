package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func newTestHub(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()

	hub := NewHub()
	registered := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(1, conn)
		close(registered)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	<-registered
	return hub, client
}

func TestBroadcast_ConcurrentSendersDeliverEverything(t *testing.T) {
	hub, client := newTestHub(t)

	const senders = 4
	const perSender = 25

	var wg sync.WaitGroup
	for g := 0; g < senders; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				hub.Broadcast(Event{Type: TypeBookingTransitioned, EntityID: 1})
			}
		}()
	}
	wg.Wait()

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < senders*perSender; i++ {
		var ev Event
		err := client.ReadJSON(&ev)
		assert.NoError(t, err)
		assert.Equal(t, TypeBookingTransitioned, ev.Type)
	}
	assert.Equal(t, 1, hub.OnlineCount())
}

func TestUnregister_RemovesConnection(t *testing.T) {
	hub, _ := newTestHub(t)
	assert.Equal(t, 1, hub.OnlineCount())

	hub.Unregister(1)
	assert.Equal(t, 0, hub.OnlineCount())
}
