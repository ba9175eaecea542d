package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the in-memory UserStore used for development and tests.
type UserStore struct {
	mu      sync.RWMutex
	users   map[primitive.ObjectID]*models.User
	byEmail map[string]primitive.ObjectID
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[primitive.ObjectID]*models.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[user.Email]; ok {
		return storage.ErrDuplicate
	}
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
	s.users[user.ID] = cloneUser(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return storage.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *UserStore) ListOtherUsers(ctx context.Context, exclude primitive.ObjectID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.User
	for id, user := range s.users {
		if id != exclude {
			result = append(result, cloneUser(user))
		}
	}
	return result, nil
}

func (s *UserStore) SetFollow(ctx context.Context, follower, followee primitive.ObjectID, follow bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.users[follower]
	if !ok {
		return storage.ErrNotFound
	}
	t, ok := s.users[followee]
	if !ok {
		return storage.ErrNotFound
	}
	f.Following = setMembership(f.Following, followee, follow)
	t.Followers = setMembership(t.Followers, follower, follow)
	return nil
}

func (s *UserStore) SetBookmark(ctx context.Context, userID, postID primitive.ObjectID, add bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	user.Bookmarks = setMembership(user.Bookmarks, postID, add)
	return nil
}

func (s *UserStore) AddPostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	user.Posts = setMembership(user.Posts, postID, true)
	return nil
}

func (s *UserStore) RemovePostRef(ctx context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	user.Posts = setMembership(user.Posts, postID, false)
	return nil
}

// summary returns the projection for one user without copying the whole record.
func (s *UserStore) summary(id primitive.ObjectID) (models.UserSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.UserSummary{}, false
	}
	return user.Summary(), true
}

// setMembership adds or removes id, keeping the set semantics of the
// underlying $addToSet/$pull operations.
func setMembership(ids []primitive.ObjectID, id primitive.ObjectID, add bool) []primitive.ObjectID {
	for i, existing := range ids {
		if existing == id {
			if add {
				return ids
			}
			return append(ids[:i], ids[i+1:]...)
		}
	}
	if add {
		return append(ids, id)
	}
	return ids
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Followers = copyIDs(u.Followers)
	cp.Following = copyIDs(u.Following)
	cp.Posts = copyIDs(u.Posts)
	cp.Bookmarks = copyIDs(u.Bookmarks)
	return &cp
}

func copyIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	cp := make([]primitive.ObjectID, len(ids))
	copy(cp, ids)
	return cp
}
