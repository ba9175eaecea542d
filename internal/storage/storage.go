package storage

import (
	"context"
	"errors"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated.
var ErrDuplicate = errors.New("already exists")

// UserStore persists accounts and their follower/bookmark/post lists.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListOtherUsers(ctx context.Context, exclude primitive.ObjectID) ([]*models.User, error)
	SetFollow(ctx context.Context, follower, followee primitive.ObjectID, follow bool) error
	SetBookmark(ctx context.Context, userID, postID primitive.ObjectID, add bool) error
	AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error
}

// PostStore persists posts and their comments. List results come back
// newest first with author summaries populated.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListPosts(ctx context.Context) ([]*models.Post, error)
	ListPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]*models.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	UpdateLikes(ctx context.Context, postID, userID primitive.ObjectID, add bool) error
	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error)
}

// MessageStore persists two-party conversations and their messages.
// At most one conversation exists per unordered participant pair.
type MessageStore interface {
	FindConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error)
	CreateMessage(ctx context.Context, sender, receiver primitive.ObjectID, text string) (*models.Message, error)
	AppendMessageRef(ctx context.Context, conversationID, messageID primitive.ObjectID) error
	ListMessages(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)
}
