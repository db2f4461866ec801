// Package websocket provides the live snapshot stream: every committed
// mutation of the contest document is broadcast in full to every connected
// client. Clients treat each frame as the authoritative state, never a
// delta; a fast series of writes may reach a slow client coalesced to the
// latest snapshot.
// file: websocket/connection.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-holo-council/logger"
)

// WSConn is an interface for the WebSocket connection.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection represents a single WebSocket connection for one client.
type Connection struct {
	id       string
	conn     WSConn
	send     chan []byte
	username string
}

// Global set of active connections.
var (
	connections = make(map[*Connection]bool)
	connMu      sync.Mutex
)

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	// the board is served from one origin and sits behind the session
	// middleware, so cross-origin checks add nothing here
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the JSON structure of inbound frames. The stream is
// read-mostly: clients identify themselves so dashboards can show who is
// online, and everything else arrives over HTTP.
type clientMessage struct {
	Action   string `json:"action"`
	Username string `json:"username,omitempty"`
}

// ServeWs upgrades the request and starts the read and write pumps.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		http.Error(w, "Failed to upgrade WebSocket", http.StatusBadRequest)
		return
	}
	logger.Info.Printf("[ServeWs] WebSocket connected: %v", wsConn.RemoteAddr())

	c := &Connection{
		id:   uuid.NewString(),
		conn: wsConn,
		send: make(chan []byte, 256),
	}
	registerConnection(c)

	// the new client immediately gets the current authoritative snapshot
	if snapshot := latestSnapshot(); snapshot != nil {
		c.send <- snapshot
	}

	go c.readPump()
	go c.writePump()
}

// readPump handles inbound messages from the client.
func (c *Connection) readPump() {
	defer func() {
		unregisterConnection(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Warn.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Warn.Printf("[readPump] Invalid JSON from %v: %v", c.conn.RemoteAddr(), err)
			continue
		}
		handleIncoming(c, msg)
	}
}

// writePump handles outbound messages to the client, including periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}

// handleIncoming processes an inbound frame.
func handleIncoming(c *Connection, msg clientMessage) {
	switch msg.Action {
	case "hello":
		c.username = msg.Username
		logger.Info.Printf("[handleIncoming] Operator %s attached to the stream", msg.Username)
		broadcastPresence()
	default:
		logger.Debug.Printf("[handleIncoming] Unhandled action: %s", msg.Action)
	}
}

// broadcastPresence tells every client which operators hold a live stream.
func broadcastPresence() {
	connMu.Lock()
	var online []string
	for c := range connections {
		if c.username != "" {
			online = append(online, c.username)
		}
	}
	connMu.Unlock()

	out, err := json.Marshal(map[string]interface{}{
		"action":    "presence",
		"operators": online,
		"connected": len(online),
	})
	if err != nil {
		logger.Error.Printf("[broadcastPresence] Marshal error: %v", err)
		return
	}
	SendBroadcastMessage(out)
}

// registerConnection adds the connection to the global set.
func registerConnection(c *Connection) {
	connMu.Lock()
	connections[c] = true
	count := len(connections)
	connMu.Unlock()
	PublishOperatorConnections(count)
}

// unregisterConnection removes the connection from the global set.
func unregisterConnection(c *Connection) {
	connMu.Lock()
	hadUsername := false
	if _, ok := connections[c]; ok {
		delete(connections, c)
		hadUsername = c.username != ""
	}
	count := len(connections)
	connMu.Unlock()

	PublishOperatorConnections(count)
	if hadUsername {
		broadcastPresence()
	}
}
