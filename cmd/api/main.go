package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/classgather-backend/internal/config"
	"github.com/sefazor/classgather-backend/internal/handler"
	"github.com/sefazor/classgather-backend/internal/middleware"
	"github.com/sefazor/classgather-backend/internal/repository"
	"github.com/sefazor/classgather-backend/internal/service"
	"github.com/sefazor/classgather-backend/pkg/assistant"
	"github.com/sefazor/classgather-backend/pkg/captcha"
	"github.com/sefazor/classgather-backend/pkg/database"
	"github.com/sefazor/classgather-backend/pkg/kvstore"
	"github.com/sefazor/classgather-backend/pkg/logger"
	"github.com/sefazor/classgather-backend/pkg/notify"
	"github.com/sefazor/classgather-backend/pkg/qrcode"
	"github.com/sefazor/classgather-backend/pkg/storage"
	"github.com/sefazor/classgather-backend/pkg/utils"
)

func main() {
	// .env opsiyonel, production'da env değişkenleri kullanılır
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Config'i yükle
	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is not set")
	}

	var redisClient *redis.Client
	if cfg.StoreDriver == "redis" || cfg.StatusPublisher == "redis" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	store, err := openStore(cfg, redisClient)
	if err != nil {
		zapLogger.Fatal("Failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	store = kvstore.WithQuota(store, cfg.StoreMaxValueBytes)

	// Repositories
	eventRepo := repository.NewEventRepository(store)
	rsvpRepo := repository.NewRSVPRepository(store)
	commentRepo := repository.NewCommentRepository(store)
	photoRepo := repository.NewPhotoRepository(store)
	sessionRepo := repository.NewSessionRepository(store)

	// Görsel encoder
	var encoder storage.ImageEncoder = storage.NewDataURLEncoder(cfg.MaxImageBytes)
	if cfg.ImageBackend == "r2" {
		r2Storage, err := storage.NewCloudflareStorage(ctx, cfg, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to initialize R2 storage", zap.Error(err))
		}
		encoder = r2Storage
	}

	gemini, err := assistant.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AssistantTimeout, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize assistant", zap.Error(err))
	}

	// Services
	authService, err := service.NewAuthService(sessionRepo, cfg.ClassPassphrase, cfg.JWTSecret, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize auth", zap.Error(err))
	}
	if cfg.TurnstileSecret != "" {
		authService.WithCaptcha(captcha.NewTurnstile(cfg.TurnstileSecret))
	}
	eventService := service.NewEventService(eventRepo, rsvpRepo, photoRepo, qrcode.NewQRService(cfg.PublicBaseURL), zapLogger)
	attendanceService := service.NewAttendanceService(eventRepo, rsvpRepo, zapLogger)
	commentService := service.NewCommentService(commentRepo, eventRepo)
	photoService := service.NewPhotoService(photoRepo, eventRepo, encoder, zapLogger)

	// Durum geçişleri Redis varsa kanala, yoksa log'a
	var publisher notify.Publisher = notify.NewLogPublisher(zapLogger)
	if redisClient != nil {
		publisher = notify.NewRedisPublisher(redisClient, cfg.StatusChannel)
	}
	monitor := service.NewStatusMonitor(eventRepo, publisher, cfg.StatusPollInterval, cfg.Timezone, zapLogger)
	go monitor.Run(ctx)

	validator := utils.NewValidator()

	app := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, validator, zapLogger),
		Event:     handler.NewEventHandler(eventService, photoService, validator, cfg.Timezone, zapLogger),
		RSVP:      handler.NewRSVPHandler(attendanceService, cfg.Timezone, zapLogger),
		Comment:   handler.NewCommentHandler(commentService, zapLogger),
		Photo:     handler.NewPhotoHandler(photoService, zapLogger),
		Assistant: handler.NewAssistantHandler(gemini, validator),
	}, middleware.AuthMiddleware(authService), handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		BodyLimit:   int(cfg.MaxImageBytes) * 2,
		AccessLog:   true,
	})

	go func() {
		<-ctx.Done()
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.String("images", cfg.ImageBackend),
		zap.String("timezone", cfg.Timezone.String()))

	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(cfg *config.Config, redisClient *redis.Client) (kvstore.Store, error) {
	switch cfg.StoreDriver {
	case "postgres", "sqlite":
		db, err := database.Open(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		gormStore, err := kvstore.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		return gormStore, nil
	case "redis":
		return kvstore.NewRedisStore(redisClient), nil
	default:
		return kvstore.NewMemoryStore(), nil
	}
}
