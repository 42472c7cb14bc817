// Package di wires the full dependency graph behind one constructor.
package di

import (
	"fmt"
	"log/slog"
	"os"

	"plugseek.dev/cli/internal/application/services"
	"plugseek.dev/cli/internal/config"
	"plugseek.dev/cli/internal/core/resolve"
	"plugseek.dev/cli/internal/infrastructure/cache"
	"plugseek.dev/cli/internal/infrastructure/modrinth"
	"plugseek.dev/cli/internal/infrastructure/spiget"
	"plugseek.dev/cli/internal/interfaces/cli"
	"plugseek.dev/cli/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	ResponseCache  *cache.Cache[[]byte]
	SpigetClient   *spiget.Client
	ModrinthClient *modrinth.Client

	// Application services
	SearchService *services.SearchService

	// Logging
	Logger   *slog.Logger
	LogLevel *slog.LevelVar
}

// NewContainer creates and configures the dependency injection container
func NewContainer() (*Container, error) {
	container := &Container{}

	if err := container.initializeComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.Config = cfg

	// 2. Set up logging
	c.Logger, c.LogLevel = logging.NewLogger(os.Stderr, cfg.Debug)

	// 3. One shared response cache shields both catalogs
	c.ResponseCache = cache.New[[]byte](cache.DefaultTTL)

	// 4. Catalog clients
	c.SpigetClient = spiget.NewClient(spiget.Config{
		BaseURL:   cfg.SpigetURL,
		UserAgent: cfg.UserAgent,
	}, c.ResponseCache, c.Logger)
	c.ModrinthClient = modrinth.NewClient(modrinth.Config{
		BaseURL:   cfg.ModrinthURL,
		UserAgent: cfg.UserAgent,
	}, c.ResponseCache, c.Logger)

	// 5. Application services over the catalog gateways
	c.SearchService = services.NewSearchService(
		resolve.NewResolver(resolve.DefaultConfig()),
		c.Logger,
		spiget.NewAdapter(c.SpigetClient, c.Logger),
		modrinth.NewAdapter(c.ModrinthClient, cfg.FetchVersions, c.Logger),
	)

	return nil
}

// GetCLIContainer exposes the slice of the graph the commands need
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return &cli.CLIContainer{
		SearchService: c.SearchService,
		Config:        c.Config,
		Logger:        c.Logger,
		LogLevel:      c.LogLevel,
	}
}
