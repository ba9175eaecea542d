package users

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the account and profile routes. Register,
// login and logout stay public; everything else requires auth.
func RegisterRoutes(r *mux.Router, h *Handler, auth mux.MiddlewareFunc) {
	public := r.PathPrefix("/api/v1/user").Subrouter()
	public.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	public.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	protected := r.PathPrefix("/api/v1/user").Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/{id}/profile", h.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile/edit", h.EditProfile).Methods(http.MethodPost)
	protected.HandleFunc("/suggested", h.GetSuggestedUsers).Methods(http.MethodGet)
	protected.HandleFunc("/followorunfollow/{id}", h.FollowOrUnfollow).Methods(http.MethodPost)
	protected.HandleFunc("/disable-first-login", h.DisableFirstLogin).Methods(http.MethodPut)
}
