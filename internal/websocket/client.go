package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

// Client represents a WebSocket client connection
type Client struct {
	UserID   string
	UserRole string // "planner" or "admin"
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte

	// Itinerary IDs this client has subscribed to
	watching   map[string]bool
	watchingMu sync.RWMutex
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Type        string `json:"type"`
	ItineraryID string `json:"itinerary_id,omitempty"`
}

// NewClient creates a new WebSocket client
func NewClient(userID, userRole string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID:   userID,
		UserRole: userRole,
		conn:     conn,
		hub:      hub,
		send:     make(chan []byte, 256),
		watching: make(map[string]bool),
	}
}

// IsWatching reports whether the client subscribed to an itinerary
func (c *Client) IsWatching(itineraryID string) bool {
	c.watchingMu.RLock()
	defer c.watchingMu.RUnlock()
	return c.watching[itineraryID]
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Invalid message format: %v", err)
			continue
		}

		switch msg.Type {
		case "ping":
			response := map[string]interface{}{
				"type":      "pong",
				"timestamp": time.Now().Format(time.RFC3339),
			}
			responseData, _ := json.Marshal(response)
			c.send <- responseData

		case "watch_itinerary":
			if msg.ItineraryID != "" {
				c.watchingMu.Lock()
				c.watching[msg.ItineraryID] = true
				c.watchingMu.Unlock()
				log.Printf("👀 %s watching itinerary %s", c.UserID, msg.ItineraryID)
			}

		case "unwatch_itinerary":
			if msg.ItineraryID != "" {
				c.watchingMu.Lock()
				delete(c.watching, msg.ItineraryID)
				c.watchingMu.Unlock()
			}
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
