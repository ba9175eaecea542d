package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/api"
	"github.com/Souravnandi004/shareXconnect/internal/cache"
	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"github.com/Souravnandi004/shareXconnect/internal/ws"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler holds the dependencies for post, comment and bookmark requests.
type Handler struct {
	Store   storage.PostStore
	Users   storage.UserStore
	Emitter ws.Emitter
	Cache   *cache.UserSummaries
}

func (h *Handler) AddPost(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Caption   string `json:"caption"`
		MediaURL  string `json:"mediaUrl"`
		MediaType string `json:"mediaType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MediaURL == "" {
		api.Error(w, http.StatusBadRequest, "Media (image or video) is required")
		return
	}
	if req.MediaType != "image" && req.MediaType != "video" {
		api.Error(w, http.StatusBadRequest, "Media type must be image or video")
		return
	}

	post := &models.Post{
		Caption:  req.Caption,
		Media:    models.Media{URL: req.MediaURL, Type: req.MediaType},
		AuthorID: me,
	}
	if err := h.Store.CreatePost(r.Context(), post); err != nil {
		log.Printf("Error creating post: %v", err)
		api.Error(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	if err := h.Users.AddPostRef(r.Context(), me, post.ID); err != nil {
		log.Printf("Error linking post %s to author: %v", post.ID.Hex(), err)
	}

	if summary, ok := h.actorSummary(r.Context(), me); ok {
		post.Author = summary
	}
	post.Comments = []*models.Comment{}

	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.ListPosts(r.Context())
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

func (h *Handler) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	posts, err := h.Store.ListPostsByAuthor(r.Context(), me)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"posts":   posts,
	})
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, true)
}

func (h *Handler) DislikePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, false)
}

// react persists the like-set mutation first, then best-effort notifies
// the post owner. The response only ever reflects the persisted outcome.
func (h *Handler) react(w http.ResponseWriter, r *http.Request, like bool) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.Store.GetPost(r.Context(), postID)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.Store.UpdateLikes(r.Context(), postID, me, like); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Self-actions never generate a notification.
	if post.AuthorID != me {
		h.notifyOwner(r.Context(), post, me, like)
	}

	message := "Post liked"
	if !like {
		message = "Post disliked"
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (h *Handler) notifyOwner(ctx context.Context, post *models.Post, actor primitive.ObjectID, like bool) {
	summary, ok := h.actorSummary(ctx, actor)
	if !ok {
		return
	}
	kind, verb := "like", "liked"
	if !like {
		kind, verb = "dislike", "disliked"
	}
	notification := models.Notification{
		Type:        kind,
		UserID:      actor.Hex(),
		UserDetails: summary,
		PostID:      post.ID.Hex(),
		CreatedAt:   time.Now(),
		Message:     fmt.Sprintf("%s %s your post", summary.Username, verb),
	}
	h.Emitter.EmitToUser(post.AuthorID.Hex(), "notification", notification)
}

// actorSummary resolves the display projection for actor, preferring the
// cache. A failed lookup only suppresses the notification, never the
// request that triggered it.
func (h *Handler) actorSummary(ctx context.Context, actor primitive.ObjectID) (models.UserSummary, bool) {
	if summary, ok := h.Cache.Get(ctx, actor.Hex()); ok {
		return summary, true
	}
	user, err := h.Users.GetUserByID(ctx, actor)
	if err != nil {
		log.Printf("Error loading user %s for notification: %v", actor.Hex(), err)
		return models.UserSummary{}, false
	}
	summary := user.Summary()
	h.Cache.Set(ctx, summary)
	return summary, true
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		api.Error(w, http.StatusBadRequest, "Text is required")
		return
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: me,
		PostID:   postID,
	}
	if err := h.Store.AddComment(r.Context(), comment); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Post not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Error adding comment")
		return
	}

	if summary, ok := h.actorSummary(r.Context(), me); ok {
		comment.Author = summary
	}

	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Comment added",
		"comment": comment,
	})
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	comments, err := h.Store.ListComments(r.Context(), postID)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Error fetching comments")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"comments": comments,
	})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.Store.GetPost(r.Context(), postID)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	if post.AuthorID != me {
		api.Error(w, http.StatusForbidden, "Unauthorized")
		return
	}

	if err := h.Store.DeletePost(r.Context(), postID); err != nil {
		api.Error(w, http.StatusInternalServerError, "Error deleting post")
		return
	}
	if err := h.Users.RemovePostRef(r.Context(), me, postID); err != nil {
		log.Printf("Error unlinking post %s from author: %v", postID.Hex(), err)
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Post deleted",
	})
}

func (h *Handler) BookmarkPost(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if _, err := h.Store.GetPost(r.Context(), postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Post not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), me)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	bookmarked := false
	for _, id := range user.Bookmarks {
		if id == postID {
			bookmarked = true
			break
		}
	}

	if err := h.Users.SetBookmark(r.Context(), me, postID, !bookmarked); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	message := "Post bookmarked"
	if bookmarked {
		message = "Post removed from bookmarks"
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      message,
		"isBookmarked": !bookmarked,
	})
}
