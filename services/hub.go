package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub relays session events to connected clients and drives the per-session
// countdown. The session store itself never ticks; the hub calls
// SetTimeRemaining once per elapsed second and Submit when the clock hits
// zero, and cancels the countdown when the session is replaced or reset.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex

	sessionService *SessionService
	countdowns     map[string]chan struct{}
	countdownMu    sync.Mutex
	tickInterval   time.Duration
}

type Client struct {
	hub       *Hub
	id        string
	socket    *websocket.Conn
	send      chan []byte
	sessionID string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(sessionService *SessionService) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		sessionService: sessionService,
		countdowns:     make(map[string]chan struct{}),
		tickInterval:   1 * time.Second,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client registered: %s for session %s - Total clients: %d", client.id, client.sessionID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s for session %s - Total clients: %d", client.id, client.sessionID, len(h.clients))
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastToSession sends a typed message to every client watching the
// session.
func (h *Hub) BroadcastToSession(sessionID string, messageType string, payload interface{}) {
	message := Message{
		Type:    messageType,
		Payload: payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	var stale []*Client
	h.mutex.RLock()
	for client := range h.clients {
		if client.sessionID != sessionID {
			continue
		}
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range stale {
		h.mutex.Lock()
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
		h.mutex.Unlock()
	}
}

// StartCountdown launches the one-second countdown for a session, replacing
// any countdown already running for the same id.
func (h *Hub) StartCountdown(sessionID string) {
	h.countdownMu.Lock()
	if stop, ok := h.countdowns[sessionID]; ok {
		close(stop)
	}
	stop := make(chan struct{})
	h.countdowns[sessionID] = stop
	h.countdownMu.Unlock()

	go h.runCountdown(sessionID, stop)
}

// StopCountdown cancels the countdown for a session, if one is running.
func (h *Hub) StopCountdown(sessionID string) {
	h.countdownMu.Lock()
	if stop, ok := h.countdowns[sessionID]; ok {
		close(stop)
		delete(h.countdowns, sessionID)
	}
	h.countdownMu.Unlock()
}

// clearCountdown removes the registration only if it still belongs to the
// finished goroutine, so a replacement countdown is left untouched.
func (h *Hub) clearCountdown(sessionID string, stop chan struct{}) {
	h.countdownMu.Lock()
	if current, ok := h.countdowns[sessionID]; ok && current == stop {
		delete(h.countdowns, sessionID)
	}
	h.countdownMu.Unlock()
}

func (h *Hub) runCountdown(sessionID string, stop chan struct{}) {
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	log.Printf("Starting countdown for session %s", sessionID)

	for {
		select {
		case <-stop:
			log.Printf("Countdown cancelled for session %s", sessionID)
			return
		case <-ticker.C:
		}

		ctx := context.Background()
		session, err := h.sessionService.Get(ctx, sessionID)
		if err != nil {
			log.Printf("Countdown read failed for session %s: %v", sessionID, err)
			continue
		}
		if session == nil || session.IsComplete {
			h.clearCountdown(sessionID, stop)
			return
		}

		remaining := session.TimeRemaining - 1
		if remaining < 0 {
			remaining = 0
		}

		if err := h.sessionService.SetTimeRemaining(ctx, sessionID, remaining); err != nil {
			log.Printf("Countdown update failed for session %s: %v", sessionID, err)
		}

		h.BroadcastToSession(sessionID, "timer_update", map[string]interface{}{
			"time_remaining": remaining,
		})

		if remaining == 0 {
			log.Printf("Countdown expired for session %s, submitting", sessionID)
			if err := h.sessionService.Submit(ctx, sessionID); err != nil {
				log.Printf("Auto-submit failed for session %s: %v", sessionID, err)
			}
			score, _ := h.sessionService.Score(ctx, sessionID)
			h.BroadcastToSession(sessionID, "session_complete", map[string]interface{}{
				"reason": "time_expired",
				"score":  score,
			})
			h.clearCountdown(sessionID, stop)
			return
		}
	}
}

// RegisterClient attaches a websocket connection to a session and starts its
// read and write pumps. The current session state is pushed immediately so a
// reconnecting client resynchronizes.
func (h *Hub) RegisterClient(conn *websocket.Conn, sessionID string) {
	client := &Client{
		hub:       h,
		id:        uuid.NewString(),
		socket:    conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	if session, err := h.sessionService.Get(context.Background(), sessionID); err == nil && session != nil {
		h.BroadcastToSession(sessionID, "state_sync", session)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		c.socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Websocket error for client %s: %v", c.id, err)
			}
			return
		}
		// Clients are read-only observers; inbound frames are ignored.
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.socket.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
