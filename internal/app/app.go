package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
	"github.com/kartikm76/middleoffice-ibor/internal/config"
	"github.com/kartikm76/middleoffice-ibor/internal/desk"
	"github.com/kartikm76/middleoffice-ibor/internal/handlers"
	"github.com/kartikm76/middleoffice-ibor/internal/interfaces"
	"github.com/kartikm76/middleoffice-ibor/internal/mcp"
	"github.com/kartikm76/middleoffice-ibor/internal/state"
	"github.com/kartikm76/middleoffice-ibor/internal/storage"
	"github.com/kartikm76/middleoffice-ibor/internal/theme"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Storage interfaces.StorageManager
	Gateway interfaces.Gateway
	Desk    *desk.Desk
	Themes  *theme.Service

	// HTTP handlers
	PageHandler         *handlers.PageHandler
	HealthHandler       *handlers.HealthHandler
	VersionHandler      *handlers.VersionHandler
	ServerHealthHandler *handlers.ServerHealthHandler
	DeskHandler         *handlers.DeskHandler
	StreamHandler       *handlers.StreamHandler
	MCPHandler          *mcp.Handler
}

// New initializes the application against the IBOR backend at cfg.API.URL.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	gw := client.NewIborClient(cfg.API.URL,
		client.WithTimeout(cfg.API.GetTimeout()),
		client.WithLogger(logger),
	)
	logger.Info().Str("api_url", gw.BaseURL()).Msg("IBOR gateway configured")
	return NewWithGateway(cfg, logger, gw)
}

// NewWithGateway initializes the application with all dependencies, using gw for backend calls.
func NewWithGateway(cfg *config.Config, logger *common.Logger, gw interfaces.Gateway) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Gateway: gw,
	}

	// Validate environment setting
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("Running in dev mode")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("Unrecognized environment value, defaulting to prod behavior")
	}

	r, err := cfg.Desk.DefaultRange()
	if err != nil {
		return nil, fmt.Errorf("invalid desk date range: %w", err)
	}

	a.Storage, err = storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference storage: %w", err)
	}
	a.Themes = theme.NewService(context.Background(), a.Storage.KeyValueStorage(), logger)

	store := state.NewStore(state.Selection{
		Portfolio: cfg.Desk.DefaultPortfolio,
		Benchmark: cfg.Desk.DefaultBenchmark,
		Range:     r,
	})
	debounce := cfg.Panels.GetDebounce()
	if debounce == 0 {
		// panel.Options reads zero as "use the default"; "0s" in config means off.
		debounce = -1
	}
	a.Desk = desk.New(store, gw, desk.Options{
		Rows:     cfg.Desk.Portfolios,
		Debounce: debounce,
		Logger:   logger,
	})

	a.initHandlers()

	logger.Info().
		Str("api_url", cfg.API.URL).
		Str("theme", string(a.Themes.Current())).
		Msg("Application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Config.IsDevMode(), a.Desk, a.Themes)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ServerHealthHandler = handlers.NewServerHealthHandler(a.Logger, a.Gateway)
	a.DeskHandler = handlers.NewDeskHandler(a.Logger, a.Desk, a.Themes)
	a.StreamHandler = handlers.NewStreamHandler(a.Logger, a.Desk)
	a.MCPHandler = mcp.NewHandler(a.Gateway, a.Desk.Store, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close stops the panels and closes preference storage.
func (a *App) Close() error {
	if a.Desk != nil {
		a.Desk.Close()
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
