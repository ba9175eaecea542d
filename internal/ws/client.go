package ws

import (
	"log"

	"github.com/gorilla/websocket"
)

// Client is one live connection for one user. The transport layer owns
// the connection; the hub's maps only hold it as a lookup entry.
type Client struct {
	ID     string
	UserID string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
}

// readPump drains the connection to detect disconnects. Inbound frames
// carry no protocol of their own; every mutation goes through the HTTP
// API and comes back out as a named event.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error for user %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// writePump forwards events from the Send channel to the connection.
// Writes on a single connection preserve emission order.
func (c *Client) writePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("[WS] write error for user %s: %v", c.UserID, err)
			return
		}
	}
}
