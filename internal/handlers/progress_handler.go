package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/example/medtranscribe/internal/config"
	"github.com/example/medtranscribe/internal/transcription"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return r.Header.Get("Sec-WebSocket-Version") != ""
		}

		for _, allowed := range config.AppConfig.Server.AllowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}

		log.Printf("Rejected WebSocket connection from origin: %s", origin)
		return false
	},
	HandshakeTimeout: 10 * time.Second,
}

// ProgressEvent is one per-file pipeline lifecycle update sent to
// subscribed dashboards
type ProgressEvent struct {
	Type      string `json:"type"` // "candidate_started" or "candidate_finished"
	RunID     string `json:"runId"`
	Index     int    `json:"index"`
	Filename  string `json:"filename"`
	Status    string `json:"status,omitempty"`
	IsDemo    bool   `json:"isDemo,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// progressClient is one connected dashboard
type progressClient struct {
	conn     *websocket.Conn
	send     chan ProgressEvent
	id       string
	lastPing time.Time
}

// ProgressHub fans pipeline progress events out to connected dashboards.
// It implements the pipeline's ProgressReporter interface.
type ProgressHub struct {
	clients    map[string]*progressClient
	register   chan *progressClient
	unregister chan *progressClient
	events     chan ProgressEvent

	mu         sync.RWMutex
	shutdown   chan struct{}
	isShutdown bool
}

// NewProgressHub creates a hub; call Run before serving connections
func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		clients:    make(map[string]*progressClient),
		register:   make(chan *progressClient),
		unregister: make(chan *progressClient),
		events:     make(chan ProgressEvent, 64),
		shutdown:   make(chan struct{}),
	}
}

// Run starts the hub's event loop in a goroutine
func (h *ProgressHub) Run() {
	go func() {
		for {
			select {
			case <-h.shutdown:
				h.mu.Lock()
				for _, client := range h.clients {
					client.conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down"))
					client.conn.Close()
				}
				h.clients = make(map[string]*progressClient)
				h.mu.Unlock()
				return

			case client := <-h.register:
				h.mu.Lock()
				h.clients[client.id] = client
				h.mu.Unlock()

			case client := <-h.unregister:
				h.mu.Lock()
				if _, ok := h.clients[client.id]; ok {
					delete(h.clients, client.id)
					close(client.send)
				}
				h.mu.Unlock()

			case event := <-h.events:
				h.mu.RLock()
				for _, client := range h.clients {
					select {
					case client.send <- event:
					default:
						// Slow client, drop the event rather than block
						// the pipeline
					}
				}
				h.mu.RUnlock()
			}
		}
	}()
}

// Shutdown closes all connections and stops the hub
func (h *ProgressHub) Shutdown() {
	h.mu.Lock()
	if !h.isShutdown {
		h.isShutdown = true
		close(h.shutdown)
	}
	h.mu.Unlock()
}

// CandidateStarted reports that a file entered the pipeline
func (h *ProgressHub) CandidateStarted(runID string, index int, filename string) {
	h.publish(ProgressEvent{
		Type:     "candidate_started",
		RunID:    runID,
		Index:    index,
		Filename: filename,
	})
}

// CandidateFinished reports a file's final outcome
func (h *ProgressHub) CandidateFinished(runID string, index int, result *transcription.Result) {
	h.publish(ProgressEvent{
		Type:     "candidate_finished",
		RunID:    runID,
		Index:    index,
		Filename: result.Filename,
		Status:   result.Status(),
		IsDemo:   result.IsDemo,
	})
}

func (h *ProgressHub) publish(event ProgressEvent) {
	event.Timestamp = time.Now().UnixNano() / int64(time.Millisecond)
	select {
	case h.events <- event:
	case <-h.shutdown:
	}
}

// ServeWs upgrades a dashboard connection and streams progress events
func (h *ProgressHub) ServeWs(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.isShutdown
	h.mu.RUnlock()
	if closed {
		http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	client := &progressClient{
		conn:     conn,
		send:     make(chan ProgressEvent, 64),
		id:       uuid.NewString(),
		lastPing: time.Now(),
	}

	h.register <- client

	go client.readPump(h)
	go client.writePump()
}

// readPump drains the connection; dashboards only listen, so inbound
// traffic is limited to control frames
func (c *progressClient) readPump(h *ProgressHub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.lastPing = time.Now()
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump pushes events and keepalive pings to the connection
func (c *progressClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
