package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	ProfilePicture string               `bson:"profilePicture" json:"profilePicture"`
	Bio            string               `bson:"bio" json:"bio"`
	Gender         string               `bson:"gender,omitempty" json:"gender,omitempty"`
	Followers      []primitive.ObjectID `bson:"followers" json:"followers"`
	Following      []primitive.ObjectID `bson:"following" json:"following"`
	Posts          []primitive.ObjectID `bson:"posts" json:"posts"`
	Bookmarks      []primitive.ObjectID `bson:"bookmarks" json:"bookmarks"`
	IsFirstLogin   bool                 `bson:"isFirstLogin" json:"isFirstLogin"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the projection embedded in posts, comments and notifications.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
