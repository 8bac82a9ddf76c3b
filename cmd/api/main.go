package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobreels-backend/config"
	_ "go-jobreels-backend/docs" // Important for Swagger
	v1 "go-jobreels-backend/internal/delivery/http/v1"
	"go-jobreels-backend/internal/repository/kv"
	"go-jobreels-backend/internal/repository/postgres"
	"go-jobreels-backend/internal/usecase"
	"go-jobreels-backend/pkg/database"
	"go-jobreels-backend/pkg/kvstore"
	"go-jobreels-backend/pkg/logger"
	"go-jobreels-backend/pkg/payment"
	"go-jobreels-backend/pkg/redis"
	"go-jobreels-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           JobReels Backend API
// @version         1.0
// @description     Backend for the JobReels short-video job marketplace.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting jobreels backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup blob store (Redis, or in-memory when not configured)
	var blobStore kvstore.Store
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, unlock/interaction state is in-memory only", "error", err)
		blobStore = kvstore.NewMemoryStore()
	} else {
		defer redis.Close()
		blobStore = kvstore.NewRedisStore(redis.Client(), "jobreels:")
	}

	// 5. Setup media storage
	storageCfg := storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.MediaBucket,
		PublicBaseURL:   cfg.MediaBaseURL,
		WasabiEndpoint:  cfg.WasabiEndpoint,
	}
	s3Client, err := storage.NewS3Client(context.Background(), storageCfg)
	if err != nil {
		logger.Log.Error("Failed to create S3 client", "error", err)
		os.Exit(1)
	}
	mediaBucket := storage.NewBucket(s3Client, storageCfg)

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	chatRepo := postgres.NewChatRepository(dbPool)
	videoRepo := postgres.NewVideoRepository(dbPool)
	unlockRepo := kv.NewUnlockRepository(blobStore)
	interactionRepo := kv.NewInteractionRepository(blobStore)

	// 7. Setup UseCases
	validate := validator.New()
	gateway := payment.NewSimulatedGateway(cfg.UnlockConfirmDelay)
	authUC := usecase.NewAuthUsecase(userRepo)
	chatUC := usecase.NewChatUsecase(chatRepo)
	unlockUC := usecase.NewUnlockUsecase(unlockRepo, gateway)
	interactionUC := usecase.NewInteractionUsecase(interactionRepo)
	videoUC := usecase.NewVideoUsecase(videoRepo, unlockRepo, mediaBucket, validate, cfg.VideoProcessingDelay, cfg.MaxVideoUploadBytes)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ChatUC:        chatUC,
		UnlockUC:      unlockUC,
		InteractionUC: interactionUC,
		VideoUC:       videoUC,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
