package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/carterror/nubex/internal/admin"
	"github.com/carterror/nubex/internal/auth"
	"github.com/carterror/nubex/internal/cart"
	"github.com/carterror/nubex/internal/config"
	httpDelivery "github.com/carterror/nubex/internal/delivery/http"
	"github.com/carterror/nubex/internal/messaging"
	"github.com/carterror/nubex/internal/messaging/kafka"
	"github.com/carterror/nubex/internal/repository/postgres"
	"github.com/carterror/nubex/internal/service"
	"github.com/carterror/nubex/internal/storage"
)

func main() {
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database ---
	db, err := postgres.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	categoryRepo := postgres.NewCategoryRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	// --- Kafka ---
	var publisher messaging.Publisher = messaging.Nop{}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.OrdersTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// --- Stores and services ---
	cartStore := cart.New(ctx, cart.NewRedisSnapshotter(rdb, cart.SnapshotKey))
	adminStore := admin.NewStore(categoryRepo, supplierRepo, productRepo, orderRepo)

	objectStore := storage.NewFSStore(cfg.StorageRoot, cfg.PublicBaseURL)
	uploader := storage.NewUploader(objectStore, storage.UploaderOptions{
		Bucket:      cfg.UploadBucket,
		MaxFileSize: cfg.UploadMaxSize,
	})

	sessions := auth.NewManager(rdb, cfg.AdminPassword, cfg.SessionTTL)

	handler := httpDelivery.NewHandler(
		service.NewCatalogService(productRepo, categoryRepo),
		service.NewCheckoutService(orderRepo, cartStore, publisher),
		service.NewAdminService(adminStore, statsRepo, publisher),
		cartStore,
		uploader,
		sessions,
	)

	// --- HTTP API ---
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.StorageRoot))))

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpDelivery.EnableCORS(mux),
	}

	go func() {
		slog.Info("🚀 HTTP server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")
	httpServer.Shutdown(context.Background())
}
