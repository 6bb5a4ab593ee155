package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Social_Network_API/internal/config"
	"github.com/Dias221467/Social_Network_API/internal/database"
	"github.com/Dias221467/Social_Network_API/internal/handlers"
	"github.com/Dias221467/Social_Network_API/internal/repository"
	"github.com/Dias221467/Social_Network_API/internal/repository/memory"
	"github.com/Dias221467/Social_Network_API/internal/services"
	"github.com/Dias221467/Social_Network_API/pkg/logger"
	"github.com/Dias221467/Social_Network_API/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	// --- Repositories ---
	var (
		userRepo    services.UserStore
		thoughtRepo services.ThoughtStore
		db          *mongo.Database
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Log.Warn("Using in-memory store, data is lost on exit")
		userRepo = memory.NewUserRepository()
		thoughtRepo = memory.NewThoughtRepository()
	default:
		var err error
		db, err = database.ConnectDB(cfg)
		if err != nil {
			logger.Log.Fatalf("Database connection error: %v", err)
		}

		users := repository.NewUserRepository(db)
		thoughts := repository.NewThoughtRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		if err := users.EnsureIndexes(ctx); err != nil {
			logger.Log.WithError(err).Warn("Could not ensure user indexes")
		}
		if err := thoughts.EnsureIndexes(ctx); err != nil {
			logger.Log.WithError(err).Warn("Could not ensure thought indexes")
		}
		cancel()

		userRepo, thoughtRepo = users, thoughts
	}

	// --- Services ---
	userService := services.NewUserService(userRepo, thoughtRepo)
	friendService := services.NewFriendService(userRepo)
	thoughtService := services.NewThoughtService(thoughtRepo, userRepo)
	reactionService := services.NewReactionService(thoughtRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)
	thoughtHandler := handlers.NewThoughtHandler(thoughtService)
	reactionHandler := handlers.NewReactionHandler(reactionService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	api := router
	if cfg.APIPrefix != "" {
		api = router.PathPrefix(cfg.APIPrefix).Subrouter()
	}
	handlers.RegisterRoutes(api, userHandler, friendHandler, thoughtHandler, reactionHandler)

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: c.Handler(router),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()
	logger.Log.Infof("Server is running on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}
	if db != nil {
		if err := database.Disconnect(ctx, db); err != nil {
			logger.Log.WithError(err).Error("MongoDB disconnect failed")
		}
	}
}
