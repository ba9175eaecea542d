package posts

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the post, comment and bookmark routes. Every
// route requires auth.
func RegisterRoutes(r *mux.Router, h *Handler, auth mux.MiddlewareFunc) {
	s := r.PathPrefix("/api/v1/post").Subrouter()
	s.Use(auth)
	s.HandleFunc("/addpost", h.AddPost).Methods(http.MethodPost)
	s.HandleFunc("/all", h.GetAllPosts).Methods(http.MethodGet)
	s.HandleFunc("/userpost/all", h.GetMyPosts).Methods(http.MethodGet)
	s.HandleFunc("/{id}/like", h.LikePost).Methods(http.MethodGet)
	s.HandleFunc("/{id}/dislike", h.DislikePost).Methods(http.MethodGet)
	s.HandleFunc("/{id}/comment", h.AddComment).Methods(http.MethodPost)
	s.HandleFunc("/{id}/comment/all", h.GetComments).Methods(http.MethodGet)
	s.HandleFunc("/delete/{id}", h.DeletePost).Methods(http.MethodDelete)
	s.HandleFunc("/{id}/bookmark", h.BookmarkPost).Methods(http.MethodGet)
}
