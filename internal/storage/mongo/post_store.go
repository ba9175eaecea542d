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

// PostStore implements storage.PostStore on MongoDB.
type PostStore struct {
	db *mongo.Database
}

func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []primitive.ObjectID{}
	}
	_, err := s.db.Collection(postCollection).InsertOne(ctx, post)
	return err
}

func (s *PostStore) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *PostStore) ListPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]*models.Post, error) {
	return s.find(ctx, bson.M{"author": author})
}

func (s *PostStore) find(ctx context.Context, filter bson.M) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(postCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if err := s.populate(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.db.Collection(postCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	_, err = s.db.Collection(commentCollection).DeleteMany(ctx, bson.M{"post": id})
	return err
}

func (s *PostStore) UpdateLikes(ctx context.Context, postID, userID primitive.ObjectID, add bool) error {
	op := "$addToSet"
	if !add {
		op = "$pull"
	}
	result, err := s.db.Collection(postCollection).UpdateOne(ctx, bson.M{"_id": postID}, bson.M{op: bson.M{"likes": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PostStore) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()
	if _, err := s.db.Collection(commentCollection).InsertOne(ctx, comment); err != nil {
		return err
	}
	result, err := s.db.Collection(postCollection).UpdateOne(ctx,
		bson.M{"_id": comment.PostID}, bson.M{"$push": bson.M{"comments": comment.ID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *PostStore) ListComments(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(commentCollection).Find(ctx, bson.M{"post": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []*models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	if err := s.populateComments(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// populate fills author summaries and comment lists for the given posts.
func (s *PostStore) populate(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.AuthorID)
	}
	summaries, err := s.summaries(ctx, authorIDs)
	if err != nil {
		return err
	}
	for _, post := range posts {
		post.Author = summaries[post.AuthorID]
		comments, err := s.ListComments(ctx, post.ID)
		if err != nil {
			return err
		}
		post.Comments = comments
	}
	return nil
}

func (s *PostStore) populateComments(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}
	summaries, err := s.summaries(ctx, authorIDs)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		comment.Author = summaries[comment.AuthorID]
	}
	return nil
}

func (s *PostStore) summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1, "profilePicture": 1})
	cursor, err := s.db.Collection(userCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.UserSummary
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	result := make(map[primitive.ObjectID]models.UserSummary, len(found))
	for _, summary := range found {
		result[summary.ID] = summary
	}
	return result, nil
}
