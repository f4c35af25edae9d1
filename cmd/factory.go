package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/knudmoeller/solar-system-rdf/api/schemas"
	"github.com/knudmoeller/solar-system-rdf/internal/builder"
	"github.com/knudmoeller/solar-system-rdf/internal/commons"
	"github.com/knudmoeller/solar-system-rdf/internal/config"
	"github.com/knudmoeller/solar-system-rdf/internal/graphstore"
	"github.com/knudmoeller/solar-system-rdf/internal/observability"
	"github.com/knudmoeller/solar-system-rdf/internal/vocab"
)

// Components holds the initialized services required for a conversion run.
// It centralizes lifecycle management of the run's dependencies.
type Components struct {
	Builder    *builder.Builder
	GraphStore schemas.GraphStore
	Namespaces vocab.Namespaces

	dbPool *pgxpool.Pool
}

// Shutdown releases all resources held by the components.
func (c *Components) Shutdown() {
	logger := observability.GetLogger()
	if c.dbPool != nil {
		c.dbPool.Close()
		logger.Debug("Database connection pool closed.")
	}
}

// ComponentFactory creates the set of components needed for a conversion.
// The abstraction keeps the convert command's logic testable.
type ComponentFactory interface {
	Create(ctx context.Context, cfg *config.Config) (*Components, error)
}

// concreteFactory is the production implementation of the ComponentFactory.
type concreteFactory struct{}

// NewComponentFactory creates a new production-ready component factory.
func NewComponentFactory() ComponentFactory {
	return &concreteFactory{}
}

// Create handles the dependency injection and initialization of all
// conversion components.
func (f *concreteFactory) Create(ctx context.Context, cfg *config.Config) (*Components, error) {
	logger := observability.GetLogger()
	components := &Components{}

	// Ensure cleanup happens if initialization fails midway.
	var initializationErr error
	defer func() {
		if initializationErr != nil {
			logger.Warn("Initialization failed, shutting down partially created components.", zap.Error(initializationErr))
			components.Shutdown()
		}
	}()

	// 1. Namespaces
	ns, err := vocab.NewNamespaces(cfg.Dataset.BaseURL)
	if err != nil {
		initializationErr = fmt.Errorf("failed to derive namespaces: %w", err)
		return nil, initializationErr
	}
	components.Namespaces = ns

	// 2. Commons metadata resolver
	clientCfg := commons.NewDefaultClientConfig()
	clientCfg.Endpoint = cfg.Commons.Endpoint
	clientCfg.RequestTimeout = cfg.Commons.Timeout
	clientCfg.UserAgent = cfg.Commons.UserAgent
	clientCfg.ForceHTTP2 = cfg.Commons.ForceHTTP2
	clientCfg.Logger = logger
	resolver, err := commons.NewClient(clientCfg)
	if err != nil {
		initializationErr = fmt.Errorf("failed to create commons client: %w", err)
		return nil, initializationErr
	}
	logger.Debug("Commons metadata resolver initialized.")

	// 3. Graph builder
	components.Builder = builder.New(ns, resolver, logger, builder.Options{
		ThumbnailWidth: cfg.Commons.ThumbnailWidth,
	})
	logger.Debug("Graph builder initialized.")

	// 4. Optional graph persistence
	if cfg.Postgres.Enabled {
		dbPool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			initializationErr = fmt.Errorf("failed to create database connection pool: %w", err)
			return nil, initializationErr
		}
		components.dbPool = dbPool

		store, err := graphstore.New(ctx, dbPool, logger)
		if err != nil {
			initializationErr = fmt.Errorf("failed to initialize graph store: %w", err)
			return nil, initializationErr
		}
		components.GraphStore = store
		logger.Debug("Graph store initialized.")
	}

	logger.Debug("All conversion components initialized.")
	return components, nil
}
