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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/uihooks/internal/config"
	"github.com/vango-dev/uihooks/internal/demo"
	hookerrors "github.com/vango-dev/uihooks/internal/errors"
	"github.com/vango-dev/uihooks/pkg/bridge"
	"github.com/vango-dev/uihooks/pkg/hooks"
	"github.com/vango-dev/uihooks/pkg/reactive"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page",
		Long: `Serve the demo page: a dropdown that closes on an outside click or
Escape, and a status line loaded with UseAsync. Browser events reach the
hooks over a WebSocket bridge at /bridge/ws.

Configuration is read from uihooks.yaml, UIHOOKS_* environment variables
and flags, in increasing precedence.

Examples:
  uihooks serve
  uihooks serve --addr=:9090
  UIHOOKS_LOG_LEVEL=debug uihooks serve --config=deploy/uihooks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default ./uihooks.yaml)")
	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	cmd.Flags().Bool("debug", false, "Validate hook order on every render")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	reactive.DebugMode = cfg.Debug

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing)
	if err != nil {
		return hookerrors.New("E060").WithDetail("tracing setup failed").Wrap(err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	loop := reactive.NewLoop(reactive.WithQueueSize(cfg.QueueSize), reactive.WithLogger(logger))
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	var b *bridge.Bridge
	page := demo.NewPage(demo.Options{
		OnView: func(v demo.View) {
			if err := b.Broadcast(viewMessage(v)); err != nil {
				logger.Warn("view broadcast failed", "error", err)
			}
		},
	})
	b = bridge.New(loop, page.Window,
		bridge.WithReadTimeout(cfg.Bridge.ReadTimeout),
		bridge.WithReadLimit(cfg.Bridge.ReadLimit),
		bridge.WithCheckOrigin(originCheck(cfg.Bridge)),
		bridge.WithLogger(logger),
		bridge.WithGreeting(func() []bridge.Message {
			return []bridge.Message{viewMessage(page.View())}
		}),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/", servePage(logger))
	r.Mount("/bridge", b.Routes())

	if cfg.Metrics.Enabled {
		hooks.EnableMetrics(hooks.WithNamespace(cfg.Metrics.Namespace))
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	if err := loop.Sync(ctx, func() { page.Mount(loop) }); err != nil {
		return hookerrors.New("E060").WithDetail("mounting the demo page").Wrap(err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	success("Serving on http://%s", cfg.Addr)
	if cfg.Metrics.Enabled {
		info("Metrics at http://%s%s", cfg.Addr, cfg.Metrics.Path)
	}
	if file := cfg.File(); file != "" {
		info("Config from %s", file)
	}

	var runErr error
	loopStopped := false
	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = hookerrors.New("E060").WithDetailf("listening on %s", cfg.Addr).Wrap(err)
		}
	case err := <-loopDone:
		loopStopped = true
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = hookerrors.New("E060").WithDetail("event loop stopped").Wrap(err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	b.Close()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}

	stop()
	loop.Close()
	if !loopStopped {
		<-loopDone
	}
	page.Unmount()
	hooks.DisableMetrics()

	return runErr
}

func viewMessage(v demo.View) bridge.Message {
	return bridge.Message{Type: "view", Data: v.Data()}
}

// originCheck returns nil, gorilla's same-origin check, unless origins are
// configured.
func originCheck(cfg config.BridgeConfig) func(*http.Request) bool {
	if len(cfg.AllowedOrigins) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		return cfg.OriginAllowed(r.Header.Get("Origin"))
	}
}

// servePage writes the demo page. A failed write means the client went
// away, so it is only logged.
func servePage(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(demo.PageHTML); err != nil {
			logger.Debug("page write failed", "error", err, "remote", r.RemoteAddr)
		}
	}
}
