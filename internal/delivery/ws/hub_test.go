package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, deliveryID string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, hub.Subscribe(w, r, deliveryID))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, deliveryID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(deliveryID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("subscriber count never reached %d", want)
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "delivery-1")
	waitForSubscribers(t, hub, "delivery-1", 1)

	hub.Broadcast(context.Background(), "delivery-1", map[string]string{"status": "in_transit"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]string
	require.NoError(t, json.Unmarshal(msg, &frame))
	assert.Equal(t, "in_transit", frame["status"])
}

func TestHubBroadcastScopedToChannel(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "delivery-a")
	waitForSubscribers(t, hub, "delivery-a", 1)

	hub.Broadcast(context.Background(), "delivery-b", map[string]string{"status": "delivered"})

	conn.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "delivery-x")
	waitForSubscribers(t, hub, "delivery-x", 1)

	conn.Close()
	waitForSubscribers(t, hub, "delivery-x", 0)
}

// A disconnect racing a broadcast must never panic the broadcaster:
// clients with full send buffers are dropped, and dropping must stay
// safe while other goroutines are mid-send.
func TestHubBroadcastRacesDisconnect(t *testing.T) {
	hub := NewHub()

	clients := make([]*client, 0, 32)
	for i := 0; i < 32; i++ {
		c := &client{
			hub:        hub,
			deliveryID: "delivery-race",
			send:       make(chan []byte, sendBuffer),
			done:       make(chan struct{}),
		}
		// fill the buffer so Broadcast takes the slow-client branch
		for j := 0; j < sendBuffer; j++ {
			c.send <- []byte("x")
		}
		hub.register(c)
		clients = append(clients, c)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.Broadcast(context.Background(), "delivery-race", map[string]string{"status": "in_transit"})
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			hub.unregister(c)
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.SubscriberCount("delivery-race"))

	// a second unregister of an already-dropped client is a no-op
	hub.unregister(clients[0])
}
