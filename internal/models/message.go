package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is immutable once created; it is never edited or deleted.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	Message    string             `bson:"message" json:"message"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Conversation groups every message exchanged between exactly two users.
// Participants are stored sorted by hex so the unordered pair has one
// canonical form; at most one conversation exists per pair.
type Conversation struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Participants [2]primitive.ObjectID `bson:"participants" json:"participants"`
	Messages     []primitive.ObjectID  `bson:"messages" json:"messages"`
	CreatedAt    time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time             `bson:"updatedAt" json:"updatedAt"`
}
