// Package ws streams live feedback (haptic pulses, discoveries) to clients
// over websockets.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kailas-cloud/radar/internal/domain/target"
	"github.com/kailas-cloud/radar/internal/metrics"
	"github.com/kailas-cloud/radar/internal/usecase/feedback"
	"github.com/kailas-cloud/radar/internal/usecase/session"
)

// Message types.
const (
	TypePulse     = "pulse"
	TypeDiscovery = "discovery"
)

// Message is one frame sent to stream clients.
type Message struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id"`
	Intensity float64      `json:"intensity,omitempty"`
	Target    *target.View `json:"target,omitempty"`
	At        time.Time    `json:"at"`
}

// Config holds stream settings.
type Config struct {
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	BufferSize     int
	AllowedOrigins []string // empty = any
}

type client struct {
	send chan []byte
}

// Hub fans session feedback out to the websocket clients watching it.
type Hub struct {
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

var _ session.DiscoveryListener = (*Hub)(nil)

// NewHub creates a Hub.
func NewHub(cfg Config, logger *zap.Logger) *Hub {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64
	}
	h := &Hub{
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		clients: make(map[string]map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

// Haptics returns the driver that turns pulses of sessionID into stream frames.
func (h *Hub) Haptics(sessionID string) feedback.HapticDriver {
	return feedback.HapticDriverFunc(func(intensity float64) {
		h.broadcast(sessionID, Message{
			Type:      TypePulse,
			SessionID: sessionID,
			Intensity: intensity,
			At:        h.now(),
		})
	})
}

// OnDiscovery forwards a discovery to the session's clients.
func (h *Hub) OnDiscovery(_ context.Context, d session.Discovery) error {
	t := d.Target
	h.broadcast(d.SessionID, Message{
		Type:      TypeDiscovery,
		SessionID: d.SessionID,
		Target:    &t,
		At:        d.At,
	})
	return nil
}

// Clients returns the number of clients watching sessionID.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// ServeSession upgrades the request and streams sessionID until the client leaves.
func (h *Hub) ServeSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{send: make(chan []byte, h.cfg.BufferSize)}
	h.register(sessionID, c)
	defer h.unregister(sessionID, c)

	go h.writePump(conn, c)
	h.readPump(conn)
}

// Disconnect closes every stream of sessionID.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[sessionID] {
		close(c.send)
	}
	delete(h.clients, sessionID)
	h.updateGauge()
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
	h.updateGauge()
}

func (h *Hub) register(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[sessionID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[sessionID] = set
	}
	set[c] = struct{}{}
	h.updateGauge()
}

func (h *Hub) unregister(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[sessionID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, sessionID)
	}
	h.updateGauge()
}

func (h *Hub) updateGauge() {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	metrics.StreamClients.Set(float64(n))
}

// broadcast never blocks: a client with a full buffer misses the frame.
func (h *Hub) broadcast(sessionID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to encode stream message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[sessionID] {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("Stream client too slow, frame dropped",
				zap.String("session_id", sessionID),
				zap.String("type", msg.Type),
			)
		}
	}
}

// writePump copies frames from c.send to the connection and keeps it alive.
func (h *Hub) writePump(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				_ = conn.Close()
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames until the connection closes. A client that
// stops answering pings is dropped after two ping intervals.
func (h *Hub) readPump(conn *websocket.Conn) {
	pongWait := 2 * h.cfg.PingInterval
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
