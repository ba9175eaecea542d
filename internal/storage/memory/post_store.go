package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStore is the in-memory PostStore used for development and tests.
// It reads author summaries from the UserStore it was built with.
type PostStore struct {
	mu       sync.RWMutex
	users    *UserStore
	posts    map[primitive.ObjectID]*models.Post
	comments map[primitive.ObjectID][]*models.Comment // postID -> comments
}

func NewPostStore(users *UserStore) *PostStore {
	return &PostStore{
		users:    users,
		posts:    make(map[primitive.ObjectID]*models.Post),
		comments: make(map[primitive.ObjectID][]*models.Comment),
	}
}

func (s *PostStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *PostStore) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	post, ok := s.posts[id]
	if !ok {
		s.mu.RUnlock()
		return nil, storage.ErrNotFound
	}
	cp := clonePost(post)
	s.mu.RUnlock()
	s.populate(cp)
	return cp, nil
}

func (s *PostStore) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.list(func(*models.Post) bool { return true })
}

func (s *PostStore) ListPostsByAuthor(ctx context.Context, author primitive.ObjectID) ([]*models.Post, error) {
	return s.list(func(p *models.Post) bool { return p.AuthorID == author })
}

func (s *PostStore) list(match func(*models.Post) bool) ([]*models.Post, error) {
	s.mu.RLock()
	result := []*models.Post{}
	for _, post := range s.posts {
		if match(post) {
			result = append(result, clonePost(post))
		}
	}
	s.mu.RUnlock()
	// Newest first.
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	for _, post := range result {
		s.populate(post)
	}
	return result, nil
}

func (s *PostStore) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	delete(s.comments, id)
	return nil
}

func (s *PostStore) UpdateLikes(ctx context.Context, postID, userID primitive.ObjectID, add bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return storage.ErrNotFound
	}
	post.Likes = setMembership(post.Likes, userID, add)
	return nil
}

func (s *PostStore) AddComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[comment.PostID]
	if !ok {
		return storage.ErrNotFound
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()
	cp := *comment
	s.comments[comment.PostID] = append(s.comments[comment.PostID], &cp)
	post.CommentIDs = append(post.CommentIDs, comment.ID)
	return nil
}

func (s *PostStore) ListComments(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	s.mu.RLock()
	result := []*models.Comment{}
	for _, comment := range s.comments[postID] {
		cp := *comment
		result = append(result, &cp)
	}
	s.mu.RUnlock()
	// Newest first.
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	for _, comment := range result {
		if summary, ok := s.users.summary(comment.AuthorID); ok {
			comment.Author = summary
		}
	}
	return result, nil
}

// populate fills the author and comment projections of one post.
func (s *PostStore) populate(post *models.Post) {
	if summary, ok := s.users.summary(post.AuthorID); ok {
		post.Author = summary
	}
	comments, _ := s.ListComments(context.Background(), post.ID)
	post.Comments = comments
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = copyIDs(p.Likes)
	cp.CommentIDs = copyIDs(p.CommentIDs)
	cp.Comments = nil
	return &cp
}
