package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/config"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/filters"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/location"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/scoring"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/search"
	"github.com/antoinebeaumadier/global-city-autocomplete/internal/storage"
)

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	cfg             *config.Config
	searchService   search.Service
	filterService   filters.Service
	locationService location.Service
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	// Open the city store
	db, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	store := storage.NewPostgresStore(db, cfg.Search, logger)

	strategy := scoring.NewWeightedStrategy(scoring.Weights{
		Population: cfg.Search.Weights.Population,
		Text:       cfg.Search.Weights.Text,
		Distance:   cfg.Search.Weights.Distance,
	})

	app := &App{
		router:          router,
		logger:          logger,
		cfg:             cfg,
		searchService:   search.NewService(store, strategy, cfg.Search, logger),
		filterService:   filters.NewService(store, cfg.Search, logger),
		locationService: location.NewResolver(cfg.GeoIP, logger),
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
