// Package websocket - websocket/broadcast.go
package websocket

import (
	"encoding/json"
	"sync"

	"go-holo-council/logger"
	"go-holo-council/models"
	"go-holo-council/store"
)

// broadcast is the channel feeding the fan-out loop.
var broadcast = make(chan []byte, 64)

// last full-document frame sent; new connections get it on attach.
var (
	snapshotMu   sync.Mutex
	lastSnapshot []byte
)

// HandleMessages listens on the broadcast channel and distributes each
// message to every active connection. A connection whose send buffer is
// full misses the frame; the next snapshot supersedes it anyway.
func HandleMessages() {
	for {
		msg := <-broadcast
		PublishBroadcastBacklog(len(broadcast))

		connMu.Lock()
		targets := make([]*Connection, 0, len(connections))
		for c := range connections {
			targets = append(targets, c)
		}
		connMu.Unlock()

		for _, c := range targets {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
			}
		}
	}
}

// Start subscribes the stream to the synchronization layer: every write
// becomes a full-document frame on the broadcast channel, in write order.
// The returned function detaches the stream.
func Start(st *store.Store) func() {
	return st.Subscribe(func(doc *models.ContestDocument) {
		frame, err := json.Marshal(map[string]interface{}{
			"action": "snapshot",
			"data":   doc,
		})
		if err != nil {
			logger.Error.Printf("[broadcast] Error marshalling snapshot: %v", err)
			return
		}

		snapshotMu.Lock()
		lastSnapshot = frame
		snapshotMu.Unlock()

		broadcast <- frame
	})
}

// latestSnapshot returns the most recent full-document frame, or nil before
// the first write.
func latestSnapshot() []byte {
	snapshotMu.Lock()
	defer snapshotMu.Unlock()
	return lastSnapshot
}

// SendBroadcastMessage allows raw byte data to be sent over the broadcast channel.
func SendBroadcastMessage(data []byte) {
	broadcast <- data
}
