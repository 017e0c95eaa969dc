// Package app wires configuration into the running components shared by the
// API server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"example.com/supplementstack/internal/cache"
	"example.com/supplementstack/internal/catalog"
	catalogpg "example.com/supplementstack/internal/catalog/postgres"
	"example.com/supplementstack/internal/config"
	"example.com/supplementstack/internal/events"
	"example.com/supplementstack/internal/logging"
	"example.com/supplementstack/internal/narrative"
	"example.com/supplementstack/internal/observability"
	"example.com/supplementstack/internal/resolver"
)

// App holds the wired components. Close releases them.
type App struct {
	Config    config.Config
	Pool      *pgxpool.Pool
	Store     catalog.Store
	View      *catalog.View
	Producer  *events.KafkaProducer
	Publisher *events.KafkaPublisher
	Resolver  *resolver.Resolver

	logger zerolog.Logger
}

// Build connects the catalog store, the optional narrative provider and the
// optional event publisher, then constructs the resolver.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg, logger: logging.WithComponent("app")}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.View = catalog.NewView(store, cfg.Catalog.TTL,
		cache.WithLoadTimeout(cfg.Catalog.LoadTimeout),
		cache.WithLoadHook(observability.RecordCatalogLoad),
	)

	opts := []resolver.Option{}
	describer, err := buildDescriber(ctx, cfg.Narrative)
	if err != nil {
		a.Close()
		return nil, err
	}
	if describer != nil {
		opts = append(opts, resolver.WithDescriber(describer))
	}

	if cfg.Kafka.Enabled {
		a.Producer = events.NewKafkaProducer(cfg.Kafka.Brokers)
		a.Publisher = events.NewKafkaPublisher(a.Producer, cfg.Kafka.RecommendationTopic)
		opts = append(opts, resolver.WithPublisher(a.Publisher))
	}

	a.Resolver = resolver.New(a.View, a.View, cfg.ResolverConfig(), opts...)
	a.logger.Info().
		Str("catalog_store", cfg.Catalog.Store).
		Str("narrative", cfg.Narrative.Provider).
		Bool("kafka", cfg.Kafka.Enabled).
		Msg("components wired")
	return a, nil
}

func (a *App) openStore(ctx context.Context) (catalog.Store, error) {
	if a.Config.Catalog.Store != config.StorePostgres {
		return catalog.NewMemoryStore(), nil
	}
	poolCfg, err := pgxpool.ParseConfig(a.Config.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if a.Config.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = a.Config.Postgres.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.Pool = pool
	return catalogpg.NewStore(pool), nil
}

func buildDescriber(ctx context.Context, cfg config.NarrativeConfig) (narrative.Describer, error) {
	if cfg.Provider != config.NarrativeGemini {
		return nil, nil
	}
	gemini, err := narrative.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return narrative.NewBreaker(gemini, narrative.BreakerSettings{
		Name:                "gemini",
		ConsecutiveFailures: cfg.BreakerFailures,
		OpenTimeout:         cfg.BreakerOpenTimeout,
	}), nil
}

// Close releases the producer and the database pool.
func (a *App) Close() {
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close kafka producer")
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
