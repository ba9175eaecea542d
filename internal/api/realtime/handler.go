package realtime

import (
	"log"
	"net/http"

	"github.com/Souravnandi004/shareXconnect/internal/ws"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler upgrades websocket handshakes and hands them to the hub.
type Handler struct {
	Hub *ws.Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS ties the connection to the user identity claimed in the
// handshake query. Handshakes without a well-formed identity are rejected
// before the upgrade.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if _, err := primitive.ObjectIDFromHex(userID); err != nil {
		http.Error(w, "A valid user_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Failed to upgrade connection for user %s: %v", userID, err)
		return
	}
	log.Printf("[WS] Connection upgraded for user %s", userID)

	h.Hub.ServeConn(conn, userID)
}
