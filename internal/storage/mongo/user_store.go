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
)

// UserStore implements storage.UserStore on MongoDB.
type UserStore struct {
	db *mongo.Database
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []primitive.ObjectID{}
	}
	_, err := s.db.Collection(userCollection).InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	return err
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.db.Collection(userCollection).FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.db.Collection(userCollection).ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) ListOtherUsers(ctx context.Context, exclude primitive.ObjectID) ([]*models.User, error) {
	cursor, err := s.db.Collection(userCollection).Find(ctx, bson.M{"_id": bson.M{"$ne": exclude}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) SetFollow(ctx context.Context, follower, followee primitive.ObjectID, follow bool) error {
	op := "$addToSet"
	if !follow {
		op = "$pull"
	}
	users := s.db.Collection(userCollection)
	result, err := users.UpdateOne(ctx, bson.M{"_id": follower}, bson.M{op: bson.M{"following": followee}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	result, err = users.UpdateOne(ctx, bson.M{"_id": followee}, bson.M{op: bson.M{"followers": follower}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) SetBookmark(ctx context.Context, userID, postID primitive.ObjectID, add bool) error {
	op := "$addToSet"
	if !add {
		op = "$pull"
	}
	result, err := s.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{op: bson.M{"bookmarks": postID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.updatePostRefs(ctx, userID, postID, "$addToSet")
}

func (s *UserStore) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.updatePostRefs(ctx, userID, postID, "$pull")
}

func (s *UserStore) updatePostRefs(ctx context.Context, userID, postID primitive.ObjectID, op string) error {
	result, err := s.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{op: bson.M{"posts": postID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
