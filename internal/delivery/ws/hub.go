package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans delivery status and location frames out to the clients
// subscribed to a delivery channel. One channel per delivery id.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*client]struct{}
	logger   *zap.Logger
}

// client.send is never closed: a Broadcast racing a disconnect could
// otherwise send on a closed channel. Shutdown is signalled through
// done instead, which unregister closes exactly once.
type client struct {
	hub        *Hub
	deliveryID string
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
}

func NewHub(logger ...*zap.Logger) *Hub {
	l := zap.L().Named("delivery.ws")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("delivery.ws")
	}
	return &Hub{
		channels: make(map[string]map[*client]struct{}),
		logger:   l,
	}
}

// Subscribe upgrades the request and pumps frames for the delivery
// until the client disconnects.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, deliveryID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:        h,
		deliveryID: deliveryID,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
	return nil
}

// Broadcast marshals the payload and queues it on every subscriber of
// the delivery. Slow clients are dropped rather than blocking the
// broadcast.
func (h *Hub) Broadcast(ctx context.Context, deliveryID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("broadcast marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	subs := make([]*client, 0, len(h.channels[deliveryID]))
	for c := range h.channels[deliveryID] {
		subs = append(subs, c)
	}
	h.mu.RUnlock()

	for _, c := range subs {
		select {
		case c.send <- data:
		default:
			h.unregister(c)
		}
	}
}

// SubscriberCount reports how many clients currently listen on the
// delivery channel.
func (h *Hub) SubscriberCount(deliveryID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[deliveryID])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[c.deliveryID] == nil {
		h.channels[c.deliveryID] = make(map[*client]struct{})
	}
	h.channels[c.deliveryID][c] = struct{}{}

	h.logger.Debug("ws client subscribed",
		zap.String("delivery_id", c.deliveryID),
		zap.Int("subscribers", len(h.channels[c.deliveryID])),
	)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[c.deliveryID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}

	// reached at most once per client: a second unregister bails out on
	// the membership check above
	delete(subs, c)
	close(c.done)
	if len(subs) == 0 {
		delete(h.channels, c.deliveryID)
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// subscribers are read-only; drain until close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
