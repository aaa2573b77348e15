package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-backend-go/internal/api"
	"portfolio-backend-go/internal/config"
	"portfolio-backend-go/internal/core"
	"portfolio-backend-go/internal/db"
	"portfolio-backend-go/internal/identity"
	"portfolio-backend-go/internal/middleware"
	"portfolio-backend-go/pkg/cache"
	"portfolio-backend-go/pkg/mailer"
	"portfolio-backend-go/pkg/messagequeue"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if cfg.GinMode == gin.ReleaseMode {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	if err := db.InitFirebase(initCtx, cfg); err != nil {
		logger.Fatal("failed to initialize Firebase", zap.Error(err))
	}
	defer db.CloseFirestore()

	fsClient := db.GetFirestoreClient()
	verifier, err := identity.NewVerifier(db.GetFirebaseAuthClient(), cfg.AdminEmail)
	if err != nil {
		logger.Fatal("failed to initialize token verifier", zap.Error(err))
	}

	profileRepo := db.NewFirestoreProfileRepository(fsClient)
	commentRepo := db.NewFirestoreCommentRepository(fsClient)
	favoriteRepo := db.NewFirestoreFavoriteRepository(fsClient)
	messageRepo := db.NewFirestoreMessageRepository(fsClient)

	var favoriteCache cache.Cache
	if cfg.RedisAddress != "" {
		favoriteCache, err = cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("favorite cache enabled", zap.String("address", cfg.RedisAddress))
	}

	notifier := core.MessageNotifier{Queue: cfg.AMQPQueue, NotifyFrom: cfg.NotifyFrom, NotifyTo: cfg.NotifyTo}
	if cfg.AMQPURL != "" {
		events, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: cfg.AMQPURL})
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer events.Close()
		notifier.Events = events
		logger.Info("contact event queue enabled", zap.String("queue", cfg.AMQPQueue))
	}
	if cfg.SMTPHost != "" {
		mail, err := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		if err != nil {
			logger.Fatal("failed to configure mailer", zap.Error(err))
		}
		notifier.Mail = mail
		logger.Info("contact mail notifications enabled", zap.String("to", cfg.NotifyTo))
	}

	profileService := core.NewProfileService(profileRepo, logger)
	commentService := core.NewCommentService(commentRepo, logger)
	favoriteService := core.NewFavoriteService(favoriteRepo, favoriteCache, logger)
	messageService := core.NewMessageService(messageRepo, notifier, time.Duration(cfg.ContactTimeoutSeconds)*time.Second, logger)

	sessions := identity.NewBroadcaster()
	auth := middleware.NewAuthMiddleware(verifier)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, api.Handlers{
		Session:  api.NewSessionHandler(profileService, verifier, sessions, logger),
		Comment:  api.NewCommentHandler(commentService, sessions, logger),
		Favorite: api.NewFavoriteHandler(favoriteService, logger),
		Contact:  api.NewContactHandler(messageService, logger),
		Admin:    api.NewAdminHandler(commentService, messageService, logger),
	}, auth)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
