package realtime

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the websocket endpoint.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		log.Printf("[WS] Handshake %s", req.URL.String())
		h.ServeWS(w, req)
	})
}
