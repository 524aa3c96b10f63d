package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/app/roster"
	"github.com/preston-bernstein/fantasy-league-service/internal/config"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
	httpserver "github.com/preston-bernstein/fantasy-league-service/internal/http"
	"github.com/preston-bernstein/fantasy-league-service/internal/http/handlers"
	"github.com/preston-bernstein/fantasy-league-service/internal/http/middleware"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
	"github.com/preston-bernstein/fantasy-league-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-league-service/internal/poller"
	"github.com/preston-bernstein/fantasy-league-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	engine        *league.Engine
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	archiveClose  func() error
}

// New constructs a server with the configured archive, player feed and
// poller wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil, nil)
}

func newServerWithFeed(ctx context.Context, cfg config.Config, logger *slog.Logger, source feed.PlayerFeed) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, source, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, source feed.PlayerFeed, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	archive, archiveClose, err := openArchive(ctx, cfg.Archive, logger)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	engine, err := league.New(ctx, store.NewMemoryStore(), archive, engineOptions(cfg, logger, recorder))
	if err != nil {
		_ = archiveClose()
		return nil, fmt.Errorf("build league engine: %w", err)
	}

	factory := newFeedFactory(logger, recorder)
	if source == nil {
		source = factory.build(cfg.Feed)
	} else {
		source = factory.wrap(source, "injected")
	}

	var (
		plr    Poller
		syncer handlers.PlayerSyncer
	)
	if source != nil {
		p := poller.New(source, engine, logger, recorder, cfg.Feed.Interval)
		plr, syncer = p, p
	}
	httpSrv := buildHTTPServer(cfg, engine, syncer, plr, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		engine:        engine,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		archiveClose:  archiveClose,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, engine *league.Engine, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		engine:     engine,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func engineOptions(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) league.Options {
	return league.Options{
		Rules: roster.Rules{
			Budget:      cfg.League.Budget,
			MaxUsername: cfg.League.MaxUsername,
			MaxTeamName: cfg.League.MaxTeamName,
		},
		EntryFee:    domainleague.Amount(cfg.League.EntryFee),
		HouseCutBPS: cfg.League.HouseCutBPS,
		Operator:    domainleague.NormalizeAddress(cfg.League.Operator),
		Logger:      logger,
		Metrics:     recorder,
	}
}

func buildHTTPServer(cfg config.Config, engine *league.Engine, syncer handlers.PlayerSyncer, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(engine, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(engine, syncer, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		if err := s.poller.Start(ctx); err != nil && s.logger != nil {
			s.logger.Error("failed to start player sync", "error", err)
		}
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Close the archive once HTTP has drained.
	if s.archiveClose != nil {
		if err := s.archiveClose(); err != nil && s.logger != nil {
			s.logger.Warn("archive close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Engine exposes the league engine.
func (s *Server) Engine() *league.Engine {
	return s.engine
}
