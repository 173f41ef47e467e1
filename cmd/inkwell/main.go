// Package main is the entry point for the inkwell blog server. It loads
// configuration, connects to services, wires the event handlers, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/embedder"
	"inkwell/internal/events"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/recommend"
	"inkwell/internal/router"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + related-article cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)

	// Data stores.
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	commentStore := store.NewCommentStore(db)
	statsStore := store.NewStatsStore(db)
	notificationStore := store.NewNotificationStore(db)
	embeddingStore := store.NewEmbeddingStore(db)
	categoryStore := store.NewCategoryStore(db)
	mediaStore := store.NewMediaStore(db)

	// S3-compatible object storage (optional, app works without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Embedding collaborator. An empty URL leaves recommendations on the
	// category and recency tiers.
	embedClient := embedder.NewClient(cfg.EmbedderURL, cfg.EmbedderAPIKey, cfg.EmbedderModel, cfg.EmbedderTimeout)
	embedService := embedder.NewService(embedClient, articleStore, embeddingStore, logger)
	if !embedClient.IsConfigured() {
		slog.Warn("embedder not configured, similarity recommendations disabled")
	}

	relatedCache := cache.NewRelatedCache(valkeyClient, cache.DefaultRelatedTTL)
	resolver := recommend.New(articleStore, embeddingStore, relatedCache, logger)

	// Event bus with its side-effect handlers.
	bus := events.NewBus(cfg.EventWorkers, cfg.EventQueueSize)
	bus.Subscribe(&events.StatsInitializer{Stats: statsStore})
	bus.Subscribe(&events.EmbeddingTrigger{Embedder: embedService, Timeout: cfg.EmbedderTimeout})
	bus.Subscribe(&events.NotificationCreator{
		Notifications: notificationStore,
		Comments:      commentStore,
		Users:         userStore,
	})
	bus.Subscribe(&events.CounterAdjuster{Stats: statsStore})
	bus.Subscribe(&events.CommentCounterAdjuster{Stats: statsStore})
	bus.Subscribe(&events.RelatedCacheFlusher{Cache: relatedCache})

	// Services.
	articleService := service.NewArticleService(articleStore, bus, logger)
	commentService := service.NewCommentService(commentStore, articleStore, bus, cfg.MaskedTerms, logger)

	// Handler groups.
	h := router.Handlers{
		Auth:          handlers.NewAuth(userStore, sessionStore, logger),
		Articles:      handlers.NewArticles(articleStore, statsStore, articleService, resolver, cfg.RelatedLimit, logger),
		Comments:      handlers.NewComments(commentStore, commentService, logger),
		Categories:    handlers.NewCategories(categoryStore, logger),
		Notifications: handlers.NewNotifications(notificationStore, logger),
	}
	if storageClient != nil {
		h.Media = handlers.NewMedia(mediaStore, storageClient, logger)
	}

	commentLimiter := middleware.NewRateLimiter(middleware.DefaultCommentLimit, middleware.DefaultCommentWindow)
	defer commentLimiter.Stop()

	r := router.New(sessionStore, h, commentLimiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain queued events after the listener is closed so no side effect
	// from an accepted request is lost.
	bus.Close()

	slog.Info("server stopped gracefully")
}
