package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"folio/internal/api"
	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/events"
	"folio/internal/kvstore"
	"folio/internal/portfolio"
	"folio/internal/storage"
	"folio/internal/tasks"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient redis.UniversalClient
	if cfg.RedisRequired() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
		redisClient = client
		logger.Info("redis connection ready", slog.String("addr", cfg.Redis.Addr()))
	}

	store, err := kvstore.Open(cfg.Store, cfg.Database, redisClient)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	logger.Info("store ready",
		slog.String("driver", cfg.Store.Driver),
		slog.String("namespace", cfg.Store.Namespace),
	)

	authService, err := auth.NewAuthServiceFromFiles(
		cfg.Auth.PrivateKeyPath,
		cfg.Auth.PublicKeyPath,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPasswordHash,
	)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}
	if cfg.Auth.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH is empty, editing is disabled")
	}

	notifier := &api.ChangeNotifier{Logger: logger}
	deps := api.Deps{
		Auth:           authService,
		Logger:         logger,
		ClamdAddr:      cfg.Clamd.Addr,
		AllowedOrigins: cfg.API.AllowedOrigins,
		MaxUploadBytes: cfg.API.MaxUploadBytes,
		LoginRateLimit: cfg.Auth.LoginRateLimitPerHour,
	}

	if redisClient != nil {
		bus := events.NewRedisBus(redisClient)
		notifier.Publisher = bus
		deps.Subscriber = bus
		deps.Redis = redisClient

		if cfg.Worker.SnapshotOnSave {
			asynqClient := asynq.NewClient(asynq.RedisClientOpt{
				Addr:     cfg.Redis.Addr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer asynqClient.Close()
			notifier.Snapshots = tasks.NewSnapshotScheduler(asynqClient, cfg.Store.Namespace, logger)
		}
	}

	if cfg.MinIO.Enabled {
		storageClient, err := storage.NewClient(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		deps.Storage = storageClient
		logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))
	}

	deps.Site = portfolio.NewSite(ctx, store, portfolio.Options{
		ConfirmDelete: cfg.Editor.ConfirmDelete,
		OnChange:      notifier.Notify,
	}, logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, deps)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
		}
	}()

	logger.Info("api listening", slog.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to start api server: %v", err)
	}
}
