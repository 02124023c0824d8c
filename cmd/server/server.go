package main

import (
	"context"
	"errors"
	"fmt"
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
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-forms/internal/config"
	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/handlers/admin"
	"github.com/KirkDiggler/rpg-forms/internal/metrics"
	"github.com/KirkDiggler/rpg-forms/internal/netsync"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-forms/internal/redis"
	"github.com/KirkDiggler/rpg-forms/internal/repositories/player"
)

const healthServiceName = "rpg.forms.v1alpha1.FormsService"

var (
	grpcPort  int
	adminAddr string
	store     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the forms server",
	Long:  `Start the gRPC host, the admin HTTP endpoint and the simulation tick loop.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides FORMS_GRPC_PORT)")
	serverCmd.Flags().StringVar(&adminAddr, "admin-addr", "", "Admin HTTP listen address (overrides FORMS_ADMIN_ADDR)")
	serverCmd.Flags().StringVar(&store, "store", "", "Record store: memory, redis or sqlite (overrides FORMS_STORE)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if adminAddr != "" {
		cfg.AdminAddr = adminAddr
	}
	if store != "" {
		cfg.Store = store
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.InfoContext(ctx, "Received shutdown signal, gracefully stopping")
		cancel()
	}()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.WarnContext(ctx, "Failed to close record store", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewPrometheus(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	registry := engine.DefaultRegistry()
	policy := cfg.TransformationPolicy()

	// Sessions hosted by this process share one bus; remote peers attach
	// through their own transport.
	networkBus := events.NewBus()
	transport, err := netsync.NewEventTransport(networkBus, "server")
	if err != nil {
		return err
	}
	defer func() { _ = transport.Close() }()

	sess, err := session.New(&session.Config{
		Registry:   registry,
		Repository: repo,
		EventBus:   events.NewBus(),
		Transport:  transport,
		Metrics:    recorder,
		Policy:     &policy,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer func() { _ = sess.Close() }()
	transport.Subscribe(sess.Deliver)

	adminHandler, err := admin.NewHandler(&admin.HandlerConfig{
		Registry:   registry,
		Repository: repo,
		Session:    sess,
		Gatherer:   reg,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}
	adminSrv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           adminHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverFunc)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverFunc)),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 3)
	go func() {
		slog.InfoContext(ctx, "gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()
	go func() {
		slog.InfoContext(ctx, "Admin server starting", "addr", cfg.AdminAddr)
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve admin: %w", err)
		}
	}()

	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- sess.Run(ctx, cfg.TickInterval)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errChan:
		cancel()
	}

	slog.InfoContext(ctx, "Shutting down")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(shutdownCtx, "Admin server shutdown failed", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(shutdownCtx, "Graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.InfoContext(shutdownCtx, "Server stopped gracefully")
	}

	if err := <-sessionDone; err != nil {
		slog.ErrorContext(shutdownCtx, "Failed to flush player records", "error", err)
		if serveErr == nil {
			serveErr = err
		}
	}

	return serveErr
}

// openRepository builds the configured record store
func openRepository(ctx context.Context, cfg *config.Config) (player.Repository, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, cfg.RedisEndpoints, &redis.Options{UseTLS: cfg.RedisTLS})
		if err != nil {
			return nil, nil, err
		}
		repo, err := player.NewRedis(&player.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil
	case config.StoreSQLite:
		repo, err := player.NewSQLite(ctx, &player.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return player.NewMemory(nil), func() error { return nil }, nil
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

func recoverFunc(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "Recovered from panic in gRPC handler", "panic", p)
	return status.Errorf(codes.Internal, "internal error")
}
