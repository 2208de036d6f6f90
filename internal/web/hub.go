package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rook-computer/feltview/internal/intent"
	"github.com/rook-computer/feltview/internal/state"
)

const (
	sendBuffer   = 256
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxFrameSize = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// consumer is one websocket client of the intent stream.
type consumer struct {
	id    string
	codec intent.Codec
	conn  *websocket.Conn
	send  chan []byte
	hub   *Hub
}

// Hub broadcasts intents to websocket consumers. Consumers that fall
// behind lose intents rather than slowing the renderer down.
type Hub struct {
	mu        sync.RWMutex
	consumers map[string]*consumer
	seq       atomic.Uint64
	dropped   atomic.Uint64
	now       func() time.Time
	log       logger

	// States receives state frames sent by consumers, if set.
	States StateSubmitter
}

func NewHub(log logger) *Hub {
	if log == nil {
		log = noopLogger{}
	}
	return &Hub{consumers: make(map[string]*consumer), now: time.Now, log: log}
}

// Publish is an intent.Handler. Each intent is encoded at most once per
// codec in use.
func (h *Hub) Publish(in intent.Intent) {
	env := intent.Envelope{
		ID:     uuid.NewString(),
		Seq:    h.seq.Add(1),
		TsMs:   h.now().UnixMilli(),
		Intent: in,
	}
	encoded := make(map[intent.Codec][]byte, 2)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.consumers {
		data, ok := encoded[c.codec]
		if !ok {
			var err error
			data, err = intent.Marshal(c.codec, env)
			if err != nil {
				h.log.Errorf("hub", "encode %s envelope %d: %v", c.codec, env.Seq, err)
				continue
			}
			encoded[c.codec] = data
		}
		select {
		case c.send <- data:
		default:
			// Drop if buffer full
			h.dropped.Add(1)
		}
	}
}

// Consumers returns the number of connected consumers.
func (h *Hub) Consumers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.consumers)
}

// Dropped counts intents not delivered to slow consumers.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Close disconnects every consumer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.consumers {
		close(c.send)
		delete(h.consumers, id)
	}
}

// ServeHTTP upgrades the request; ?codec=json|proto picks the encoding.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	codec, err := intent.ParseCodec(r.URL.Query().Get("codec"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_codec", err.Error())
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("hub", "upgrade: %v", err)
		return
	}
	c := &consumer{
		id:    uuid.NewString(),
		codec: codec,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		hub:   h,
	}
	h.mu.Lock()
	h.consumers[c.id] = c
	total := len(h.consumers)
	h.mu.Unlock()
	h.log.Infof("hub", "consumer %s connected (codec=%s), total: %d", c.id, codec, total)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) remove(c *consumer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.consumers[c.id]; !ok {
		return
	}
	delete(h.consumers, c.id)
	close(c.send)
	h.log.Infof("hub", "consumer %s disconnected, total: %d", c.id, len(h.consumers))
}

func (c *consumer) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Errorf("hub", "read from %s: %v", c.id, err)
			}
			return
		}
		if messageType == websocket.TextMessage {
			c.handleState(message)
		}
	}
}

// handleState submits a TableState JSON frame sent by the consumer.
func (c *consumer) handleState(data []byte) {
	if c.hub.States == nil {
		return
	}
	var st state.TableState
	if err := json.Unmarshal(data, &st); err != nil {
		c.hub.log.Errorf("hub", "consumer %s sent invalid state: %v", c.id, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	sub, err := c.hub.States.SubmitState(ctx, st)
	if err != nil {
		c.hub.log.Errorf("hub", "state from %s: %v", c.id, err)
		return
	}
	for _, w := range sub.Warnings {
		c.hub.log.Errorf("hub", "state from %s: %s", c.id, w)
	}
}

func (c *consumer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	msgType := websocket.TextMessage
	if c.codec == intent.CodecProto {
		msgType = websocket.BinaryMessage
	}
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msgType, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
