package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/ports"
	"github.com/smartlicense/license-api/internal/core/service"
	"github.com/smartlicense/license-api/internal/infrastructure/config"
	"github.com/smartlicense/license-api/internal/infrastructure/db/mongo"
	"github.com/smartlicense/license-api/internal/infrastructure/db/postgres"
	redisstore "github.com/smartlicense/license-api/internal/infrastructure/db/redis"
	"github.com/smartlicense/license-api/pkg/logger"
)

// app holds the connections and services shared by every subcommand.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store ports.Store
	redis *goredis.Client // nil when REDIS_ADDR is empty

	identity *service.IdentityService
	recovery *service.RecoveryService
	bookings *service.BookingService
	stations *service.StationService
	profiles *service.ProfileService
}

// newApp loads configuration, initialises the logger and opens the store
// selected by STORE_DRIVER. withRedis also connects the idempotency store.
func newApp(ctx context.Context, withRedis bool) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "license-api",
	})
	log := logger.Get()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("store connected")

	a := &app{cfg: cfg, log: log, store: store}

	var idem ports.IdempotencyStore
	if withRedis && cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		a.redis = client
		idem = redisstore.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store connected")
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	a.identity = service.NewIdentityService(store.Users(), hasher, logger.Component("identity"))
	a.recovery = service.NewRecoveryService(store.SecurityQuestions(), store.SecurityAnswers(), store.Users(), hasher, logger.Component("recovery"))
	a.bookings = service.NewBookingService(store.Bookings(), store.LearnerProfiles(), idem, logger.Component("bookings"))
	a.stations = service.NewStationService(store.Stations(), logger.Component("stations"))
	a.profiles = service.NewProfileService(
		store.Users(),
		store.UserProfiles(),
		store.InstructorProfiles(),
		store.LearnerProfiles(),
		store.Stations(),
		logger.Component("profiles"),
	)
	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return mongo.NewStore(client, db), nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// migrate brings the schema up to date and seeds the security question catalog.
func (a *app) migrate(ctx context.Context) error {
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	n, err := a.recovery.SeedCatalog(ctx)
	if err != nil {
		return fmt.Errorf("seed security questions: %w", err)
	}
	a.log.Info().Int("inserted", n).Msg("security question catalog ready")
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error().Err(err).Msg("close redis")
		}
	}
	if err := a.store.Close(ctx); err != nil {
		a.log.Error().Err(err).Msg("close store")
	}
}
