package gamemaster

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type client struct {
	send chan []byte
}

// Hub fans a game's state out to its websocket watchers.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// register adds c with first already queued.
func (h *Hub) register(c *client, first []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	c.send <- first
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Publish queues msg for every watcher. Slow watchers miss updates rather than
// stalling the game.
func (h *Hub) Publish(msgType string, payload any) {
	data, err := encodeMessage(msgType, payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode websocket message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every watcher and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func encodeMessage(msgType string, payload any) ([]byte, error) {
	msg := wsMessage{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = raw
	}
	return json.Marshal(msg)
}

// serveWS upgrades the request and streams "state" messages until either side hangs up.
// The current state is sent first.
func serveWS(g *Game, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("websocket upgrade failed")
		return
	}

	initial, err := encodeMessage("state", g.View())
	if err != nil {
		log.Error().Err(err).Msg("failed to encode websocket message")
		conn.Close()
		return
	}
	c := &client{send: make(chan []byte, 16)}
	if !g.hub.register(c, initial) {
		conn.Close()
		return
	}

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, c.send); err != nil {
			log.Debug().Err(err).Str("game", g.ID).Msg("websocket writer stopped")
		}
	}()

	// Watchers only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			g.hub.unregister(c)
			return
		}
	}
}

func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := encodeMessage("ping", nil)

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
