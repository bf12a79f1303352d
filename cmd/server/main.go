package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/chitchat-app/chitchat/internal/config"
	"github.com/chitchat-app/chitchat/internal/database"
	"github.com/chitchat-app/chitchat/internal/gemini"
	postgresrepo "github.com/chitchat-app/chitchat/internal/repository/postgres"
	"github.com/chitchat-app/chitchat/internal/service"
	"github.com/chitchat-app/chitchat/internal/transport/http/handlers"
	"github.com/chitchat-app/chitchat/internal/transport/http/middleware"
	"github.com/chitchat-app/chitchat/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	profileRepo := postgresrepo.NewProfileRepo(pool)
	convRepo := postgresrepo.NewConversationRepo(pool)
	msgRepo := postgresrepo.NewMessageRepo(pool)
	limitRepo := postgresrepo.NewAIChatLimitRepo(pool)

	// Upstream
	geminiClient := gemini.New(cfg.GeminiAPIKeys, cfg.GeminiModel)

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWTSecret)
	profileService := service.NewProfileService(profileRepo)
	convService := service.NewConversationService(convRepo, profileRepo)
	msgService := service.NewMessageService(msgRepo, convRepo)
	assistantService := service.NewAssistantService(limitRepo, geminiClient)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	msgService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.AllowedEmailDomains)
	profileHandler := handlers.NewProfileHandler(profileService)
	convHandler := handlers.NewConversationHandler(convService)
	msgHandler := handlers.NewMessageHandler(msgService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	// Middleware
	auth := middleware.Auth(cfg.JWTSecret)
	authLimiter := middleware.NewLimiterStore(10, 5, time.Minute)
	limited := middleware.RateLimit(authLimiter)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("POST /api/v1/auth/register", limited(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", limited(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/v1/auth/verify", authHandler.Verify)

	// Protected - Session & Profile
	mux.Handle("GET /api/v1/auth/session", auth(http.HandlerFunc(authHandler.Session)))
	mux.Handle("GET /api/v1/profile", auth(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PATCH /api/v1/profile", auth(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("GET /api/v1/profile/qr", auth(http.HandlerFunc(profileHandler.ShareQR)))

	// Protected - Conversations
	mux.Handle("GET /api/v1/conversations", auth(http.HandlerFunc(convHandler.List)))
	mux.Handle("POST /api/v1/conversations", auth(http.HandlerFunc(convHandler.Start)))
	mux.Handle("GET /api/v1/conversations/{id}", auth(http.HandlerFunc(convHandler.Get)))
	mux.Handle("PATCH /api/v1/conversations/{id}/name", auth(http.HandlerFunc(convHandler.Rename)))

	// Protected - Messages
	mux.Handle("GET /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(msgHandler.List)))
	mux.Handle("POST /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(msgHandler.Send)))
	mux.Handle("POST /api/v1/conversations/{id}/read", auth(http.HandlerFunc(msgHandler.MarkRead)))

	// Protected - AI Assistant
	mux.Handle("GET /api/v1/assistant/quota", auth(http.HandlerFunc(assistantHandler.Quota)))
	mux.Handle("POST /api/v1/assistant/ask", auth(http.HandlerFunc(assistantHandler.Ask)))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, convService, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
