package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageStore implements storage.MessageStore on MongoDB. Conversations
// store their participant pair sorted by hex, and a unique index on that
// pair keeps concurrent first messages from creating two conversations.
type MessageStore struct {
	db *mongo.Database
}

func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) FindConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	pair := sortPair(a, b)
	var conv models.Conversation
	err := s.db.Collection(conversationCollection).
		FindOne(ctx, bson.M{"participants": bson.A{pair[0], pair[1]}}).Decode(&conv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *MessageStore) CreateConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	now := time.Now()
	conv := &models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: sortPair(a, b),
		Messages:     []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.db.Collection(conversationCollection).InsertOne(ctx, conv)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the race against a concurrent first message; the
		// existing conversation is the one to use.
		return s.FindConversation(ctx, a, b)
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *MessageStore) CreateMessage(ctx context.Context, sender, receiver primitive.ObjectID, text string) (*models.Message, error) {
	msg := &models.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   sender,
		ReceiverID: receiver,
		Message:    text,
		CreatedAt:  time.Now(),
	}
	if _, err := s.db.Collection(messageCollection).InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MessageStore) AppendMessageRef(ctx context.Context, conversationID, messageID primitive.ObjectID) error {
	result, err := s.db.Collection(conversationCollection).UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{"$push": bson.M{"messages": messageID}, "$set": bson.M{"updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MessageStore) ListMessages(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	conv, err := s.FindConversation(ctx, a, b)
	if errors.Is(err, storage.ErrNotFound) {
		return []*models.Message{}, nil
	}
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.db.Collection(messageCollection).
		Find(ctx, bson.M{"_id": bson.M{"$in": conv.Messages}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []*models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// sortPair returns the unordered pair in its canonical form.
func sortPair(a, b primitive.ObjectID) [2]primitive.ObjectID {
	if a.Hex() > b.Hex() {
		a, b = b, a
	}
	return [2]primitive.ObjectID{a, b}
}
