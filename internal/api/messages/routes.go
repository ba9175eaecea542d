package messages

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the direct-message routes. Every route
// requires auth.
func RegisterRoutes(r *mux.Router, h *Handler, auth mux.MiddlewareFunc) {
	s := r.PathPrefix("/api/v1/message").Subrouter()
	s.Use(auth)
	s.HandleFunc("/send/{id}", h.SendMessage).Methods(http.MethodPost)
	s.HandleFunc("/all/{id}", h.GetMessages).Methods(http.MethodGet)
}
