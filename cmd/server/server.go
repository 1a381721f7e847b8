package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/pokedex-api/internal/config"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/catalog/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
)

var (
	grpcPort   int
	configPath string
	redisAddr  string
	batchSize  int
	language   string
	baseURL    string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the Pokedex API gRPC server. The catalog load starts in the background.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides config)")
	serverCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address; in-memory storage when empty")
	serverCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Records fetched per batch (overrides config)")
	serverCmd.Flags().StringVar(&language, "language", "", "Description and label language (overrides config)")
	serverCmd.Flags().StringVar(&baseURL, "base-url", "", "PokeAPI base URL (overrides config)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if grpcPort != 0 {
		cfg.Server.Port = grpcPort
	}
	if redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if batchSize != 0 {
		cfg.Loader.BatchSize = batchSize
	}
	if language != "" {
		cfg.PokeAPI.Language = language
	}
	if baseURL != "" {
		cfg.PokeAPI.BaseURL = baseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// setDefaultSlog points the internal packages' slog output at stderr with
// the configured level and format
func setDefaultSlog(cfg config.LoggingConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if cfg.Format == "console" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	setDefaultSlog(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(recoveryHandler(logger))),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandler(recoveryHandler(logger))),
		),
	)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Catalog: app.Catalog,
		Viewer:  app.Viewer,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog handler: %w", err)
	}
	v1alpha1.RegisterCatalogServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	unsubscribe := watchReadiness(app.Catalog, healthServer, logger)
	defer unsubscribe()

	reflection.Register(srv)

	go startLoad(ctx, app.Catalog, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("redis", cfg.UseRedis()),
			zap.Int("batch_size", cfg.Loader.BatchSize))
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// watchReadiness keeps the catalog service NOT_SERVING until the first batch
// is committed
func watchReadiness(svc catalog.Service, healthServer *health.Server, logger *zap.Logger) func() {
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return svc.Subscribe(func(ev catalog.Event) {
		switch ev.Type {
		case catalog.EventReady, catalog.EventLoadCompleted:
			healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		case catalog.EventBatchLoaded:
			logger.Debug("batch loaded",
				zap.String("run_id", ev.RunID),
				zap.Int("batch", ev.BatchIndex),
				zap.Int("loaded", ev.Loaded),
				zap.Int("total", ev.Total))
		case catalog.EventLoadFailed:
			logger.Error("catalog load failed",
				zap.String("run_id", ev.RunID),
				zap.Int("loaded", ev.Loaded),
				zap.Error(ev.Err))
		}
	})
}

func startLoad(ctx context.Context, svc catalog.Service, logger *zap.Logger) {
	out, err := svc.Load(ctx, &catalog.LoadInput{})
	if err != nil {
		logger.Error("catalog load aborted", zap.Error(err))
		return
	}
	logger.Info("catalog loaded",
		zap.String("run_id", out.RunID),
		zap.Int("loaded", out.Loaded),
		zap.Int("total", out.Total))
}

// interceptorLogger adapts zap to the middleware logger
func interceptorLogger(l *zap.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(_ context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}

		logger := l.WithOptions(zap.AddCallerSkip(1)).With(zapFields...)
		switch lvl {
		case grpc_logging.LevelDebug:
			logger.Debug(msg)
		case grpc_logging.LevelInfo:
			logger.Info(msg)
		case grpc_logging.LevelWarn:
			logger.Warn(msg)
		case grpc_logging.LevelError:
			logger.Error(msg)
		default:
			logger.Info(msg, zap.Any("unknown_level", lvl))
		}
	})
}

func recoveryHandler(logger *zap.Logger) grpc_recovery.RecoveryHandlerFunc {
	return func(p any) error {
		logger.Error("recovered from panic", zap.Any("panic", p), zap.Stack("stack"))
		return errors.ToGRPCError(errors.Internal("internal error"))
	}
}
