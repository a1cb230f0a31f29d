package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/courtside/sportsbuddy/internal/config"
	"github.com/courtside/sportsbuddy/internal/database"
	"github.com/courtside/sportsbuddy/internal/handlers"
	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/logging"
	"github.com/courtside/sportsbuddy/internal/middleware"
	"github.com/courtside/sportsbuddy/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting SportsBuddy server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	version, err := database.RunMigrations(cfg.Database.DSN(), database.MigrationsPath)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("Migrations completed", map[string]interface{}{
		"schema_version": version,
	})

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Live-update fanout. Redis pub/sub spans instances; the in-memory broker
	// only sees writes made by this process.
	var broker live.Broker
	if cfg.Live.Broker == "memory" {
		broker = live.NewMemoryBroker()
		logger.Info("Using in-memory live broker")
	} else {
		broker = live.NewRedisBroker(redisDB.Client)
		logger.Info("Using Redis live broker")
	}

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	sessionStore := services.NewRedisAdapter(redisDB.Client)

	profileService := services.NewProfileService(dbAdapter)
	authService := services.NewAuthService(profileService, sessionStore)
	connectionService := services.NewConnectionService(dbAdapter, profileService, broker)
	conversationService := services.NewConversationService(dbAdapter, profileService, broker)
	messageService := services.NewMessageService(dbAdapter, conversationService, broker)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(profileService, authService, cfg.Server.Secure)
	profileHandler := handlers.NewProfileHandler(profileService)
	buddyHandler := handlers.NewBuddyHandler(connectionService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)

	userKey := func(r *http.Request) string {
		if user := handlers.GetUserFromContext(r.Context()); user != nil {
			return user.ID.String()
		}
		return ""
	}
	authLimiter := middleware.NewRateLimiter(redisDB.Client, 20, time.Minute, "ratelimit:auth:", nil)
	requestLimiter := middleware.NewRateLimiter(redisDB.Client, 30, time.Minute, "ratelimit:requests:", userKey)
	messageLimiter := middleware.NewRateLimiter(redisDB.Client, 120, time.Minute, "ratelimit:messages:", userKey)

	requireAuth := authMiddleware.RequireAuth

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/register", authLimiter.Limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandler.Logout))
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// Profile endpoints
	mux.Handle("GET /api/profiles/{id}", requireAuth(http.HandlerFunc(profileHandler.GetSummary)))
	mux.Handle("GET /api/buddies", requireAuth(http.HandlerFunc(profileHandler.ListBuddies)))

	// Buddy request endpoints
	mux.Handle("POST /api/buddies/requests", requireAuth(requestLimiter.Limit(http.HandlerFunc(buddyHandler.SendRequest))))
	mux.Handle("PUT /api/buddies/requests/{id}/accept", requireAuth(http.HandlerFunc(buddyHandler.AcceptRequest)))
	mux.Handle("PUT /api/buddies/requests/{id}/reject", requireAuth(http.HandlerFunc(buddyHandler.RejectRequest)))
	mux.Handle("GET /api/buddies/requests/incoming", requireAuth(http.HandlerFunc(buddyHandler.ListIncoming)))
	mux.Handle("GET /api/buddies/requests/incoming/stream", requireAuth(http.HandlerFunc(buddyHandler.StreamIncoming)))
	mux.Handle("GET /api/buddies/requests/outgoing", requireAuth(http.HandlerFunc(buddyHandler.ListOutgoingTargets)))

	// Conversation endpoints
	mux.Handle("POST /api/conversations", requireAuth(http.HandlerFunc(conversationHandler.EnsureConversation)))
	mux.Handle("GET /api/conversations", requireAuth(http.HandlerFunc(conversationHandler.ListConversations)))
	mux.Handle("GET /api/conversations/stream", requireAuth(http.HandlerFunc(conversationHandler.StreamConversations)))

	// Message endpoints
	mux.Handle("POST /api/conversations/{id}/messages", requireAuth(messageLimiter.Limit(http.HandlerFunc(messageHandler.Send))))
	mux.Handle("GET /api/conversations/{id}/messages", requireAuth(http.HandlerFunc(messageHandler.ListMessages)))
	mux.Handle("GET /api/conversations/{id}/messages/stream", requireAuth(http.HandlerFunc(messageHandler.StreamMessages)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// SSE streams stay open indefinitely; a write timeout would sever them.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
