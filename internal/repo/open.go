package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/migrations"
)

// Open connects to the store named by cfg.Driver and returns its TripRepo
// plus a function that releases the connection. Postgres migrations are
// applied before Open returns.
func Open(ctx context.Context, cfg config.Store, log *slog.Logger) (TripRepo, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverPostgres, "":
		return openPostgres(ctx, cfg, log)
	default:
		return nil, nil, fmt.Errorf("repo.Open: unknown store driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.Store, log *slog.Logger) (TripRepo, func(), error) {
	// New() does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("repo.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.Open: ping postgres: %w", err)
	}

	// goose drives database/sql; borrow a handle backed by the same pool.
	sqlDB := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.Open: goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.Open: migrate: %w", err)
	}
	log.Info("database connection established", "driver", config.DriverPostgres, "migrations_applied", len(results))

	return NewTripRepo(pool), pool.Close, nil
}

func openMongo(ctx context.Context, cfg config.Store, log *slog.Logger) (TripRepo, func(), error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("repo.Open: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("repo.Open: ping mongo: %w", err)
	}
	log.Info("database connection established", "driver", config.DriverMongo, "database", cfg.MongoDatabase)

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect failed", "error", err)
		}
	}
	return NewMongoTripRepo(client.Database(cfg.MongoDatabase)), closeFn, nil
}
