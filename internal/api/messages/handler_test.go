package messages

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"github.com/Souravnandi004/shareXconnect/internal/storage/memory"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type emitRecord struct {
	UserID  string
	Event   string
	Payload interface{}
}

type fakeEmitter struct {
	emits []emitRecord
}

func (f *fakeEmitter) EmitToUser(userID, event string, payload interface{}) {
	f.emits = append(f.emits, emitRecord{UserID: userID, Event: event, Payload: payload})
}

// failingMessageStore simulates an unavailable persistence layer.
type failingMessageStore struct {
	storage.MessageStore
}

func (s *failingMessageStore) CreateMessage(ctx context.Context, sender, receiver primitive.ObjectID, text string) (*models.Message, error) {
	return nil, errors.New("storage unavailable")
}

func sendMessage(h *Handler, sender primitive.ObjectID, receiver, text string) *httptest.ResponseRecorder {
	body := bytes.NewBufferString(fmt.Sprintf(`{"textMessage":%q}`, text))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/message/send/"+receiver, body)
	req = middleware.WithUserID(req, sender.Hex())
	req = mux.SetURLVars(req, map[string]string{"id": receiver})
	rr := httptest.NewRecorder()
	h.SendMessage(rr, req)
	return rr
}

func TestSendMessagePersistsAndEmitsToBothParties(t *testing.T) {
	store := memory.NewMessageStore()
	emitter := &fakeEmitter{}
	h := &Handler{Store: store, Emitter: emitter}
	sender, receiver := primitive.NewObjectID(), primitive.NewObjectID()

	rr := sendMessage(h, sender, receiver.Hex(), "hello")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success    bool            `json:"success"`
		NewMessage *models.Message `json:"newMessage"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.NewMessage == nil || resp.NewMessage.Message != "hello" {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
	if resp.NewMessage.SenderID != sender || resp.NewMessage.ReceiverID != receiver {
		t.Fatalf("message has wrong parties: %+v", resp.NewMessage)
	}

	messages, err := store.ListMessages(context.Background(), sender, receiver)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 1 || messages[0].Message != "hello" {
		t.Fatalf("message not persisted: %+v", messages)
	}

	if len(emitter.emits) != 2 {
		t.Fatalf("expected 2 pushes, got %d", len(emitter.emits))
	}
	if emitter.emits[0].UserID != receiver.Hex() || emitter.emits[0].Event != "newMessage" {
		t.Fatalf("first push should target the receiver: %+v", emitter.emits[0])
	}
	if emitter.emits[1].UserID != sender.Hex() || emitter.emits[1].Event != "newMessage" {
		t.Fatalf("second push should mirror to the sender: %+v", emitter.emits[1])
	}
}

func TestSendMessageTwiceKeepsOneConversation(t *testing.T) {
	store := memory.NewMessageStore()
	h := &Handler{Store: store, Emitter: &fakeEmitter{}}
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	if rr := sendMessage(h, a, b.Hex(), "first"); rr.Code != http.StatusCreated {
		t.Fatalf("first send failed: %d", rr.Code)
	}
	if rr := sendMessage(h, b, a.Hex(), "second"); rr.Code != http.StatusCreated {
		t.Fatalf("second send failed: %d", rr.Code)
	}

	ctx := context.Background()
	conv, err := store.FindConversation(ctx, a, b)
	if err != nil {
		t.Fatalf("FindConversation: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("expected both messages in one conversation, got %d refs", len(conv.Messages))
	}

	messages, err := store.ListMessages(ctx, a, b)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 2 || messages[0].Message != "first" || messages[1].Message != "second" {
		t.Fatalf("messages out of order: %+v", messages)
	}
}

func TestSendMessagePersistenceFailureEmitsNothing(t *testing.T) {
	emitter := &fakeEmitter{}
	h := &Handler{
		Store:   &failingMessageStore{MessageStore: memory.NewMessageStore()},
		Emitter: emitter,
	}

	rr := sendMessage(h, primitive.NewObjectID(), primitive.NewObjectID().Hex(), "hello")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if len(emitter.emits) != 0 {
		t.Fatalf("nothing may be emitted for an uncommitted message, got %d pushes", len(emitter.emits))
	}
}

func TestSendMessageInvalidReceiver(t *testing.T) {
	emitter := &fakeEmitter{}
	h := &Handler{Store: memory.NewMessageStore(), Emitter: emitter}

	rr := sendMessage(h, primitive.NewObjectID(), "not-an-id", "hello")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(emitter.emits) != 0 {
		t.Fatalf("expected no pushes, got %d", len(emitter.emits))
	}
}

func TestSendMessageEmptyText(t *testing.T) {
	h := &Handler{Store: memory.NewMessageStore(), Emitter: &fakeEmitter{}}
	rr := sendMessage(h, primitive.NewObjectID(), primitive.NewObjectID().Hex(), "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetMessagesWithoutHistory(t *testing.T) {
	h := &Handler{Store: memory.NewMessageStore(), Emitter: &fakeEmitter{}}
	me, other := primitive.NewObjectID(), primitive.NewObjectID()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/message/all/"+other.Hex(), nil)
	req = middleware.WithUserID(req, me.Hex())
	req = mux.SetURLVars(req, map[string]string{"id": other.Hex()})
	rr := httptest.NewRecorder()
	h.GetMessages(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Success  bool              `json:"success"`
		Messages []*models.Message `json:"messages"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if !resp.Success || resp.Messages == nil || len(resp.Messages) != 0 {
		t.Fatalf("expected empty message list, got %s", rr.Body.String())
	}
}
