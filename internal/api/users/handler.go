package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/api"
	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/models"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Handler holds the dependencies for account and profile requests.
type Handler struct {
	Store    storage.UserStore
	Posts    storage.PostStore
	Secret   []byte
	TokenTTL time.Duration
}

// profileView is the sanitized user shape returned by login and profile
// endpoints; it carries populated posts instead of bare references.
type profileView struct {
	ID             primitive.ObjectID   `json:"_id"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	ProfilePicture string               `json:"profilePicture"`
	Bio            string               `json:"bio"`
	Gender         string               `json:"gender,omitempty"`
	Followers      []primitive.ObjectID `json:"followers"`
	Following      []primitive.ObjectID `json:"following"`
	Posts          []*models.Post       `json:"posts"`
	Bookmarks      []*models.Post       `json:"bookmarks,omitempty"`
	IsFirstLogin   bool                 `json:"isFirstLogin"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Something is missing, please check.")
		return
	}

	if _, err := h.Store.GetUserByEmail(r.Context(), req.Email); err == nil {
		api.Error(w, http.StatusBadRequest, "Email already in use. Try a different one.")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashed),
		IsFirstLogin: true,
	}
	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			api.Error(w, http.StatusBadRequest, "Email already in use. Try a different one.")
			return
		}
		log.Printf("Error creating user: %v", err)
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Account successfully created",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusUnauthorized, "Incorrect Email or Password")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		api.Error(w, http.StatusUnauthorized, "Incorrect Email or Password")
		return
	}

	token, err := middleware.NewToken(h.Secret, user.ID.Hex(), h.TokenTTL)
	if err != nil {
		log.Printf("Error signing token for user %s: %v", user.ID.Hex(), err)
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	posts, err := h.Posts.ListPostsByAuthor(r.Context(), user.ID)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.TokenTTL.Seconds()),
	})

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Welcome Back, %s", user.Username),
		"user": profileView{
			ID:             user.ID,
			Username:       user.Username,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Bio:            user.Bio,
			Gender:         user.Gender,
			Followers:      user.Followers,
			Following:      user.Following,
			Posts:          posts,
			IsFirstLogin:   user.IsFirstLogin,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged Out Successfully",
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid or missing user ID")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	posts, err := h.Posts.ListPostsByAuthor(r.Context(), user.ID)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	bookmarks := []*models.Post{}
	for _, postID := range user.Bookmarks {
		post, err := h.Posts.GetPost(r.Context(), postID)
		if errors.Is(err, storage.ErrNotFound) {
			continue // bookmarked post was deleted
		}
		if err != nil {
			api.Error(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		bookmarks = append(bookmarks, post)
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user": profileView{
			ID:             user.ID,
			Username:       user.Username,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
			Bio:            user.Bio,
			Gender:         user.Gender,
			Followers:      user.Followers,
			Following:      user.Following,
			Posts:          posts,
			Bookmarks:      bookmarks,
			IsFirstLogin:   user.IsFirstLogin,
		},
	})
}

func (h *Handler) GetSuggestedUsers(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	suggested, err := h.Store.ListOtherUsers(r.Context(), me)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if len(suggested) == 0 {
		api.Error(w, http.StatusNotFound, "No users available")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   suggested,
	})
}

func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Bio            string `json:"bio"`
		Gender         string `json:"gender"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Gender != "" && req.Gender != "male" && req.Gender != "female" {
		api.Error(w, http.StatusBadRequest, "Gender must be male or female")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), me)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "User Not Found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	user.IsFirstLogin = false

	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *Handler) FollowOrUnfollow(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	target, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if me == target {
		api.Error(w, http.StatusBadRequest, "You cannot follow or unfollow yourself")
		return
	}

	if _, err := h.Store.GetUserByID(r.Context(), target); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), me)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	following := false
	for _, id := range user.Following {
		if id == target {
			following = true
			break
		}
	}

	if err := h.Store.SetFollow(r.Context(), me, target, !following); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	message := "Followed successfully"
	if following {
		message = "Unfollowed successfully"
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (h *Handler) DisableFirstLogin(w http.ResponseWriter, r *http.Request) {
	me, err := primitive.ObjectIDFromHex(middleware.UserID(r))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), me)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user.IsFirstLogin = false
	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		api.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "First login disabled",
	})
}
