package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/xp-optimizer/internal/config"
	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/httpapi"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp/v1alpha1"
	"github.com/KirkDiggler/xp-optimizer/internal/metrics"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
	"github.com/KirkDiggler/xp-optimizer/internal/tracing"
)

const readHeaderTimeout = 10 * time.Second

type serverOptions struct {
	grpcPort  int
	httpPort  int
	redisAddr string
}

func newServerCmd() *cobra.Command {
	opts := &serverOptions{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the gRPC and HTTP servers",
		Long: `Start the optimizer service. gRPC and HTTP share one optimizer, one result
cache (Redis when XP_OPTIMIZER_REDIS_ADDR is set) and one metrics registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.grpcPort, "grpc-port", 50051, "gRPC server port")
	cmd.Flags().IntVar(&opts.httpPort, "http-port", 8080, "HTTP server port")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the result cache")

	return cmd
}

// applyServerFlags overrides environment settings with explicit flags
func applyServerFlags(cmd *cobra.Command, cfg *config.Config, opts *serverOptions) error {
	if cmd.Flags().Changed("grpc-port") {
		cfg.GRPCPort = opts.grpcPort
	}
	if cmd.Flags().Changed("http-port") {
		cfg.HTTPPort = opts.httpPort
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.RedisAddr = opts.redisAddr
	}
	return cfg.Validate()
}

func runServer(cmd *cobra.Command, opts *serverOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyServerFlags(cmd, cfg, opts); err != nil {
		return err
	}

	setupLogging(os.Stderr, cfg.SlogLevel())

	var traceWriter io.Writer
	if cfg.TraceStdout {
		traceWriter = cmd.OutOrStdout()
	}
	shutdownTracing, err := tracing.Setup(&tracing.Config{Writer: traceWriter, Version: Version})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newResultRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bus := events.NewBus()
	recorder := metrics.NewRecorder(registry)
	recorder.Subscribe(bus)
	defer func() {
		if err := recorder.Unsubscribe(bus); err != nil {
			slog.Warn("Failed to unsubscribe metrics", "error", err)
		}
	}()

	svc, err := newOptimizerService(cfg, bus, repo)
	if err != nil {
		return err
	}

	grpcServer, err := newGRPCServer(svc)
	if err != nil {
		return err
	}

	httpHandler, err := httpapi.NewHandler(&httpapi.HandlerConfig{
		OptimizerService: svc,
		Gatherer:         registry,
	})
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(httpHandler),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on gRPC port %d", cfg.GRPCPort)
	}

	return serve(ctx, cfg.ShutdownTimeout, grpcServer, lis, httpServer)
}

// serve runs both servers until ctx ends or either fails, then shuts both down
func serve(
	ctx context.Context, shutdownTimeout time.Duration,
	grpcServer *grpc.Server, lis net.Listener, httpServer *http.Server,
) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("gRPC server starting", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return errors.Wrap(err, "gRPC server failed")
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		httpErr := httpServer.Shutdown(shutdownCtx)

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			grpcServer.Stop()
		case <-stopped:
			slog.Info("Servers stopped gracefully")
		}

		if httpErr != nil {
			return errors.Wrap(httpErr, "HTTP shutdown failed")
		}
		return nil
	})

	return g.Wait()
}

// newGRPCServer registers the optimizer, health and reflection services
func newGRPCServer(svc optimizer.Service) (*grpc.Server, error) {
	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{OptimizerService: svc})
	if err != nil {
		return nil, err
	}

	logger := grpc_logging.LoggerFunc(logFunc)
	recoveryHandler := grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		slog.ErrorContext(ctx, "Recovered from panic", "panic", p)
		return errors.ToGRPCError(errors.Internal("internal error"))
	})

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recoveryHandler),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recoveryHandler),
		),
	)

	v1alpha1.RegisterOptimizerServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
