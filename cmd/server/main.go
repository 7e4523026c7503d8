package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kristykoh/krispyledger-web/internal/auth"
	"github.com/kristykoh/krispyledger-web/internal/config"
	"github.com/kristykoh/krispyledger-web/internal/metrics"
	"github.com/kristykoh/krispyledger-web/internal/middleware"
	"github.com/kristykoh/krispyledger-web/internal/service"
	"github.com/kristykoh/krispyledger-web/internal/session"
	"github.com/kristykoh/krispyledger-web/internal/storage"
	"github.com/kristykoh/krispyledger-web/pkg/logging"
)

const (
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		return err
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	backend, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	store := storage.Chain(backend,
		storage.Instrument(m),
		storage.WithTimeout(cfg.StoreTimeout),
	)
	defer store.Close()

	opts := []session.Option{
		session.WithLogger(slog.Default()),
		session.WithRecorder(m),
		session.WithIdleTTL(cfg.SessionIdleTTL),
	}
	if cfg.DistributedLock {
		locker, closeLocker, err := openLocker(ctx, cfg, backend)
		if err != nil {
			return err
		}
		defer closeLocker()
		opts = append(opts, session.WithLocker(locker, 0))
		slog.Info("Distributed locking enabled", "redis", cfg.RedisAddr)
	}
	manager := session.NewManager(store, opts...)
	go manager.RunJanitor(ctx, janitorInterval)

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor(slog.Default())}
	if cfg.BridgeSecret != "" {
		jwtManager := auth.NewJWTManager(cfg.BridgeSecret, cfg.BridgeTokenTTL)
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager))
	} else {
		slog.Warn("BRIDGE_SECRET is not set, the dialog service accepts unauthenticated calls")
	}

	mux := http.NewServeMux()
	path, handler := service.NewDialogServiceHandler(
		service.NewDialogService(manager, slog.Default()),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(path, handler)
	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "X-Request-Id"},
	}).Handler(mux)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming clients)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h2c.NewHandler(corsHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", cfg.ListenAddr,
			"procedure", service.DispatchProcedure,
			"metrics", cfg.MetricsPath,
			"store", cfg.StoreDriver,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
