package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/desktop/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/bridge"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/dialog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/files"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
)

// gzipMinSize is the smallest response body worth compressing.
const gzipMinSize = 512

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	bridge  *bridge.Bridge
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewBridge builds the command bridge described by cfg. It is shared by the
// server and the one-shot CLI commands.
func NewBridge(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*bridge.Bridge, error) {
	driver, err := NewDialogDriver(cfg, logger)
	if err != nil {
		return nil, err
	}

	filters := dialog.DefaultFilters()
	if cfg.Dialog.FiltersFile != "" {
		filters, err = dialog.LoadFilters(cfg.Dialog.FiltersFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded dialog filters",
			zap.String("file", cfg.Dialog.FiltersFile),
			zap.Int("filters", len(filters)),
		)
	}

	store := files.NewOSStore(cfg.Files.MaxReadBytes, logger)
	b := bridge.New(driver, store, logger).WithFilters(filters)
	if metrics != nil {
		b = b.WithMetrics(metrics)
	}
	return b, nil
}

// NewDialogDriver selects the dialog backend named in cfg.
func NewDialogDriver(cfg *config.Config, logger *logging.Logger) (dialog.Driver, error) {
	switch cfg.Dialog.Backend {
	case config.DialogNative:
		return dialog.NewNative(logger), nil
	case config.DialogTerminal:
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return dialog.NewTerminal(os.Stdin, os.Stderr, afero.NewOsFs(), wd, logger), nil
	case config.DialogHeadless:
		return dialog.NewHeadless(), nil
	default:
		return nil, fmt.Errorf("unknown dialog backend %q", cfg.Dialog.Backend)
	}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing desktop bridge",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("dialog_backend", cfg.Dialog.Backend),
	)

	metrics := monitoring.NewMetrics()

	b, err := NewBridge(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	return newServer(cfg, b, logger, metrics), nil
}

func newServer(cfg *config.Config, b *bridge.Bridge, logger *logging.Logger, metrics *monitoring.Metrics) *Server {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	handlers := apihttp.NewHandlers(b, metrics, logger, cfg.Dialog.Backend)
	wsHandler := ws.NewHandler(b, metrics, logger, cfg.CORS.Origins)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/commands", handlers.ListCommands)
	router.POST("/invoke/:command", handlers.Invoke)
	router.POST("/logs", handlers.StreamLogs)

	// WebSocket
	router.GET("/ipc", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           compress(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(wsHandler.Shutdown)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		http:    srv,
		bridge:  b,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
}

// compress gzips responses for clients that accept it. WebSocket upgrades
// bypass the wrapper since they need the raw connection.
func compress(next http.Handler) http.Handler {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		panic(fmt.Sprintf("invalid gzip settings: %v", err))
	}
	gz := wrap(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run starts the HTTP server and blocks until it stops. It returns nil after
// a graceful Shutdown.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server. Open IPC connections are closed and
// their pending dialogs are abandoned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		err = fmt.Errorf("failed to shut down server: %w", err)
	}

	_ = s.logger.Sync()
	return err
}
