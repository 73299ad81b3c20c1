package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/freshplate/freshplate-backend/internal/config"
	"github.com/freshplate/freshplate-backend/internal/database"
	"github.com/freshplate/freshplate-backend/internal/handlers"
	"github.com/freshplate/freshplate-backend/internal/middleware"
	"github.com/freshplate/freshplate-backend/internal/routes"
	"github.com/freshplate/freshplate-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Stores: MongoDB when configured, in-memory otherwise (local development).
	var (
		recipes  store.RecipeStore
		users    store.UserStore
		contacts store.ContactStore
	)
	if cfg.MongoURI == "" {
		log.Println("MONGODB_URI not set, using in-memory stores (data is not persisted)")
		recipes = store.NewMemoryRecipeStore()
		users = store.NewMemoryUserStore()
		contacts = store.NewMemoryContactStore()
	} else {
		log.Printf("Connecting to MongoDB...")
		if err := database.Connect(cfg.MongoURI); err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer database.Disconnect()

		if err := store.EnsureIndexes(context.Background(), database.DB); err != nil {
			log.Printf("WARNING: failed to ensure MongoDB indexes: %v", err)
		}

		recipes = store.NewMongoRecipeStore(database.DB)
		users = store.NewMongoUserStore(database.DB)
		contacts = store.NewMongoContactStore(database.DB)
	}

	// Redis backs rate limiting; the server runs without it.
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Printf("WARNING: Redis unavailable, rate limiting disabled: %v", err)
		} else {
			defer database.DisconnectRedis()
		}
	} else {
		log.Println("REDIS_URI not set, rate limiting disabled")
	}

	handlers.Init(cfg, recipes, users, contacts)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimitMiddleware)

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, cfg)

	log.Printf("FreshPlate backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
