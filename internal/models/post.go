package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Media struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // "image" or "video"
}

type Post struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Caption    string               `bson:"caption" json:"caption"`
	Media      Media                `bson:"media" json:"media"`
	AuthorID   primitive.ObjectID   `bson:"author" json:"-"`
	Author     UserSummary          `bson:"-" json:"author"`
	Likes      []primitive.ObjectID `bson:"likes" json:"likes"`
	CommentIDs []primitive.ObjectID `bson:"comments" json:"-"`
	Comments   []*Comment           `bson:"-" json:"comments"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text      string             `bson:"text" json:"text"`
	AuthorID  primitive.ObjectID `bson:"author" json:"-"`
	Author    UserSummary        `bson:"-" json:"author"`
	PostID    primitive.ObjectID `bson:"post" json:"post"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
