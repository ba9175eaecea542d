package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is the named-event envelope every push uses on the wire.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Emitter is the producer-facing side of the hub. Handlers emit through
// this interface after their durable write has committed.
type Emitter interface {
	EmitToUser(userID, event string, payload interface{})
}

// Hub owns the set of live clients and the presence registry. Connection
// lifecycle goes through the Register/Unregister channels; producers only
// reach the registry through EmitToUser.
type Hub struct {
	clients    map[string]*Client // connID -> client
	presence   *Presence
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		presence:   NewPresence(),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.add(client)
		case client := <-h.Unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	h.presence.Register(client.UserID, client.ID)
	h.broadcastOnlineUsers()
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	h.mu.Unlock()
	h.presence.Unregister(client.ID)
	h.broadcastOnlineUsers()
}

// ServeConn wires an upgraded connection into the hub under userID and
// starts its pumps. The connection id is assigned here and never reused.
func (h *Hub) ServeConn(conn *websocket.Conn, userID string) {
	client := &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Hub:    h,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}
	h.Register <- client
	go client.writePump()
	go client.readPump()
}

// EmitToUser pushes a named event to userID's live connection, if any.
// Delivery is best effort and at most once: an offline user, a full send
// buffer or a connection closing concurrently with the push all drop the
// event silently. The call never blocks.
func (h *Hub) EmitToUser(userID, event string, payload interface{}) {
	connID, ok := h.presence.Lookup(userID)
	if !ok {
		return
	}
	data, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		log.Printf("[WS] failed to marshal %s event: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[connID]; ok {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// Online returns the ids of every user with a live connection.
func (h *Hub) Online() []string {
	return h.presence.Online()
}

func (h *Hub) broadcastOnlineUsers() {
	data, err := json.Marshal(Event{Event: "getOnlineUsers", Payload: h.presence.Online()})
	if err != nil {
		log.Printf("[WS] failed to marshal getOnlineUsers event: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}
