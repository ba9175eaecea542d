package messages

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Souravnandi004/shareXconnect/internal/api"
	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"github.com/Souravnandi004/shareXconnect/internal/ws"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler holds the dependencies for direct-message requests.
type Handler struct {
	Store   storage.MessageStore
	Emitter ws.Emitter
}

// SendMessage persists a message into the sender/receiver conversation and
// then pushes it to both parties' live connections. The persistence steps
// must all succeed before anything is emitted; emitter outcome never
// changes the response.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sender, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid sender or receiver ID")
		return
	}
	receiver, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid sender or receiver ID")
		return
	}

	var req struct {
		TextMessage string `json:"textMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TextMessage == "" {
		api.Error(w, http.StatusBadRequest, "Message text is required")
		return
	}

	conv, err := h.Store.FindConversation(r.Context(), sender, receiver)
	if errors.Is(err, storage.ErrNotFound) {
		conv, err = h.Store.CreateConversation(r.Context(), sender, receiver)
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	msg, err := h.Store.CreateMessage(r.Context(), sender, receiver, req.TextMessage)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.Store.AppendMessageRef(r.Context(), conv.ID, msg.ID); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Receiver gets the message; the sender's own open session mirrors
	// the send immediately. Both pushes are independent best-effort.
	h.Emitter.EmitToUser(receiver.Hex(), "newMessage", msg)
	h.Emitter.EmitToUser(sender.Hex(), "newMessage", msg)

	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"newMessage": msg,
	})
}

// GetMessages returns the conversation history with the user in the path,
// oldest first. No conversation yet means an empty list, not an error.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid sender or receiver ID")
		return
	}
	other, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid sender or receiver ID")
		return
	}

	messages, err := h.Store.ListMessages(r.Context(), me, other)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}
