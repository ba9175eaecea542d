package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage/memory"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type emitRecord struct {
	UserID  string
	Event   string
	Payload interface{}
}

type fakeEmitter struct {
	emits []emitRecord
}

func (f *fakeEmitter) EmitToUser(userID, event string, payload interface{}) {
	f.emits = append(f.emits, emitRecord{UserID: userID, Event: event, Payload: payload})
}

type reactFixture struct {
	handler *Handler
	emitter *fakeEmitter
	store   *memory.PostStore
	owner   *models.User
	actor   *models.User
	post    *models.Post
}

func newReactFixture(t *testing.T) *reactFixture {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserStore()
	store := memory.NewPostStore(users)
	emitter := &fakeEmitter{}

	owner := &models.User{Username: "owner", Email: "owner@example.com", Password: "x"}
	actor := &models.User{Username: "actor", Email: "actor@example.com", Password: "x"}
	for _, user := range []*models.User{owner, actor} {
		if err := users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	post := &models.Post{Caption: "c", Media: models.Media{URL: "u", Type: "image"}, AuthorID: owner.ID}
	if err := store.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	return &reactFixture{
		handler: &Handler{Store: store, Users: users, Emitter: emitter},
		emitter: emitter,
		store:   store,
		owner:   owner,
		actor:   actor,
		post:    post,
	}
}

func (f *reactFixture) react(t *testing.T, actor primitive.ObjectID, postID string, like bool) *httptest.ResponseRecorder {
	t.Helper()
	verb := "like"
	if !like {
		verb = "dislike"
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/post/"+postID+"/"+verb, nil)
	req = middleware.WithUserID(req, actor.Hex())
	req = mux.SetURLVars(req, map[string]string{"id": postID})
	rr := httptest.NewRecorder()
	if like {
		f.handler.LikePost(rr, req)
	} else {
		f.handler.DislikePost(rr, req)
	}
	return rr
}

func TestLikeOwnPostEmitsNothing(t *testing.T) {
	f := newReactFixture(t)
	rr := f.react(t, f.owner.ID, f.post.ID.Hex(), true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(f.emitter.emits) != 0 {
		t.Fatalf("self-like must not notify, got %d pushes", len(f.emitter.emits))
	}
	post, err := f.store.GetPost(context.Background(), f.post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(post.Likes) != 1 || post.Likes[0] != f.owner.ID {
		t.Fatalf("like not persisted: %+v", post.Likes)
	}
}

func TestLikeNotifiesPostOwner(t *testing.T) {
	f := newReactFixture(t)
	rr := f.react(t, f.actor.ID, f.post.ID.Hex(), true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	if len(f.emitter.emits) != 1 {
		t.Fatalf("expected exactly one push, got %d", len(f.emitter.emits))
	}
	push := f.emitter.emits[0]
	if push.UserID != f.owner.ID.Hex() || push.Event != "notification" {
		t.Fatalf("unexpected push: %+v", push)
	}
	notification, ok := push.Payload.(models.Notification)
	if !ok {
		t.Fatalf("payload is not a notification: %#v", push.Payload)
	}
	if notification.Type != "like" {
		t.Fatalf("expected like notification, got %q", notification.Type)
	}
	if notification.UserID != f.actor.ID.Hex() || notification.UserDetails.Username != "actor" {
		t.Fatalf("wrong actor details: %+v", notification)
	}
	if notification.PostID != f.post.ID.Hex() {
		t.Fatalf("wrong post id: %q", notification.PostID)
	}
	if notification.Message != "actor liked your post" {
		t.Fatalf("unexpected summary: %q", notification.Message)
	}
}

func TestDislikeRemovesLikeAndNotifies(t *testing.T) {
	f := newReactFixture(t)
	f.react(t, f.actor.ID, f.post.ID.Hex(), true)
	rr := f.react(t, f.actor.ID, f.post.ID.Hex(), false)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	post, err := f.store.GetPost(context.Background(), f.post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(post.Likes) != 0 {
		t.Fatalf("dislike should remove the like: %+v", post.Likes)
	}

	if len(f.emitter.emits) != 2 {
		t.Fatalf("expected like then dislike pushes, got %d", len(f.emitter.emits))
	}
	notification := f.emitter.emits[1].Payload.(models.Notification)
	if notification.Type != "dislike" || notification.Message != "actor disliked your post" {
		t.Fatalf("unexpected dislike notification: %+v", notification)
	}
}

func TestRepeatLikeStaysIdempotent(t *testing.T) {
	f := newReactFixture(t)
	for i := 0; i < 2; i++ {
		if rr := f.react(t, f.actor.ID, f.post.ID.Hex(), true); rr.Code != http.StatusOK {
			t.Fatalf("like %d failed: %d", i, rr.Code)
		}
	}
	post, err := f.store.GetPost(context.Background(), f.post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(post.Likes) != 1 {
		t.Fatalf("expected a single like entry, got %d", len(post.Likes))
	}
}

func TestLikeMissingPost(t *testing.T) {
	f := newReactFixture(t)
	rr := f.react(t, f.actor.ID, primitive.NewObjectID().Hex(), true)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if len(f.emitter.emits) != 0 {
		t.Fatalf("expected no pushes, got %d", len(f.emitter.emits))
	}
}

func TestLikeInvalidPostID(t *testing.T) {
	f := newReactFixture(t)
	rr := f.react(t, f.actor.ID, "not-an-id", true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
