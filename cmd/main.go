package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Souravnandi004/shareXconnect/internal/api"
	"github.com/Souravnandi004/shareXconnect/internal/api/messages"
	"github.com/Souravnandi004/shareXconnect/internal/api/posts"
	"github.com/Souravnandi004/shareXconnect/internal/api/realtime"
	"github.com/Souravnandi004/shareXconnect/internal/api/users"
	"github.com/Souravnandi004/shareXconnect/internal/cache"
	"github.com/Souravnandi004/shareXconnect/internal/config"
	"github.com/Souravnandi004/shareXconnect/internal/middleware"
	"github.com/Souravnandi004/shareXconnect/internal/storage"
	"github.com/Souravnandi004/shareXconnect/internal/storage/memory"
	mongostore "github.com/Souravnandi004/shareXconnect/internal/storage/mongo"
	"github.com/Souravnandi004/shareXconnect/internal/ws"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	var (
		userStore    storage.UserStore
		postStore    storage.PostStore
		messageStore storage.MessageStore
	)
	if cfg.MongoURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := mongostore.NewDB(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			cancel()
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			cancel()
			log.Fatalf("Failed to create indexes: %v", err)
		}
		cancel()
		log.Println("Connected to MongoDB")
		userStore = mongostore.NewUserStore(db)
		postStore = mongostore.NewPostStore(db)
		messageStore = mongostore.NewMessageStore(db)
	} else {
		log.Println("MONGO_URL not set, using in-memory storage")
		us := memory.NewUserStore()
		userStore = us
		postStore = memory.NewPostStore(us)
		messageStore = memory.NewMessageStore()
	}

	var summaries *cache.UserSummaries
	if cfg.ValkeyAddr != "" {
		c, err := cache.NewUserSummaries(cfg.ValkeyAddr)
		if err != nil {
			log.Printf("Valkey unavailable, notification summaries uncached: %v", err)
		} else {
			summaries = c
			defer c.Close()
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	auth := middleware.Auth([]byte(cfg.JWTSecret))

	userHandler := &users.Handler{
		Store:    userStore,
		Posts:    postStore,
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: cfg.TokenTTL,
	}
	postHandler := &posts.Handler{Store: postStore, Users: userStore, Emitter: hub, Cache: summaries}
	messageHandler := &messages.Handler{Store: messageStore, Emitter: hub}
	realtimeHandler := &realtime.Handler{Hub: hub}

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "I'm coming from backend",
		})
	}).Methods(http.MethodGet)

	users.RegisterRoutes(r, userHandler, auth)
	posts.RegisterRoutes(r, postHandler, auth)
	messages.RegisterRoutes(r, messageHandler, auth)
	realtime.RegisterRoutes(r, realtimeHandler)

	handler := middleware.CORS(cfg.AllowedOrigin)(r)

	log.Printf("Server started at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
