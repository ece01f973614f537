package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	handlers "github.com/slobodan-ilic/ggrc-core/internal/adapter/handler/http"
	"github.com/slobodan-ilic/ggrc-core/internal/config"
	"github.com/slobodan-ilic/ggrc-core/internal/infrastructure/database"
	grpcServer "github.com/slobodan-ilic/ggrc-core/internal/infrastructure/grpc"
	httpServer "github.com/slobodan-ilic/ggrc-core/internal/infrastructure/http"
	"github.com/slobodan-ilic/ggrc-core/internal/infrastructure/metrics"
	"github.com/slobodan-ilic/ggrc-core/internal/usecase"
	"github.com/slobodan-ilic/ggrc-core/pkg/logger"
	"github.com/slobodan-ilic/ggrc-core/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Value events go to redis when enabled
	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.Redis.Enabled {
		publisher, err = messaging.NewRedisPublisher(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		zapLogger.Info("Publishing custom attribute value events",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("channel", cfg.Redis.Channel))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zapLogger.Error("Failed to close publisher", zap.Error(err))
		}
	}()

	m := metrics.New(cfg.Service.MetricsNamespace)
	service := usecase.NewCustomAttributeValueService(
		repos.Values,
		repos.Definitions,
		repos.Objects,
		publisher,
		cfg.Redis.Channel,
		m,
		zapLogger,
	)

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, handlers.NewCustomAttributeHandler(service, zapLogger), m)

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 15*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
