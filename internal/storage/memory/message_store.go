package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageStore is the in-memory MessageStore used for development and
// tests. Find and create share one mutex, so two concurrent first
// messages between the same pair still end up in a single conversation.
type MessageStore struct {
	mu            sync.Mutex
	conversations map[string]*models.Conversation // canonical pair key -> conversation
	byID          map[primitive.ObjectID]*models.Conversation
	messages      map[primitive.ObjectID]*models.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		conversations: make(map[string]*models.Conversation),
		byID:          make(map[primitive.ObjectID]*models.Conversation),
		messages:      make(map[primitive.ObjectID]*models.Message),
	}
}

func (s *MessageStore) FindConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[pairKey(a, b)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneConversation(conv), nil
}

func (s *MessageStore) CreateConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(a, b)
	if conv, ok := s.conversations[key]; ok {
		return cloneConversation(conv), nil
	}
	now := time.Now()
	conv := &models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: sortPair(a, b),
		Messages:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.conversations[key] = conv
	s.byID[conv.ID] = conv
	return cloneConversation(conv), nil
}

func (s *MessageStore) CreateMessage(ctx context.Context, sender, receiver primitive.ObjectID, text string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := &models.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   sender,
		ReceiverID: receiver,
		Message:    text,
		CreatedAt:  time.Now(),
	}
	s.messages[msg.ID] = msg
	cp := *msg
	return &cp, nil
}

func (s *MessageStore) AppendMessageRef(ctx context.Context, conversationID, messageID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byID[conversationID]
	if !ok {
		return storage.ErrNotFound
	}
	conv.Messages = append(conv.Messages, messageID)
	conv.UpdatedAt = time.Now()
	return nil
}

func (s *MessageStore) ListMessages(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[pairKey(a, b)]
	if !ok {
		return []*models.Message{}, nil
	}
	result := make([]*models.Message, 0, len(conv.Messages))
	for _, id := range conv.Messages {
		if msg, ok := s.messages[id]; ok {
			cp := *msg
			result = append(result, &cp)
		}
	}
	return result, nil
}

// sortPair returns the unordered pair in its canonical form.
func sortPair(a, b primitive.ObjectID) [2]primitive.ObjectID {
	if a.Hex() > b.Hex() {
		a, b = b, a
	}
	return [2]primitive.ObjectID{a, b}
}

func pairKey(a, b primitive.ObjectID) string {
	pair := sortPair(a, b)
	return pair[0].Hex() + "|" + pair[1].Hex()
}

func cloneConversation(c *models.Conversation) *models.Conversation {
	cp := *c
	cp.Messages = copyIDs(c.Messages)
	return &cp
}
