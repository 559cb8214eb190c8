package main

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/storepulse/store-rating/internal/api/handler"
	"github.com/storepulse/store-rating/internal/core/ports"
	"github.com/storepulse/store-rating/internal/core/service"
	"github.com/storepulse/store-rating/internal/infrastructure/config"
	mongostore "github.com/storepulse/store-rating/internal/infrastructure/db/mongo"
	redisstore "github.com/storepulse/store-rating/internal/infrastructure/db/redis"
	"github.com/storepulse/store-rating/internal/infrastructure/db/sqlstore"
	"github.com/storepulse/store-rating/pkg/logger"
)

// app holds the process-wide resources opened from configuration.
// Redis and Mongo are optional and stay nil when disabled.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *gorm.DB
	rdb   *goredis.Client
	mongo *gomongo.Client
	mdb   *gomongo.Database
}

// boot loads configuration, initialises the logger and opens every
// configured backend.
func boot(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "store-rating",
	})

	a := &app{cfg: cfg, log: log}

	a.db, err = sqlstore.Open(ctx, sqlstore.Config{
		Driver:          cfg.DB.Driver,
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		Debug:           cfg.DB.Debug,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("database connected")

	if cfg.Redis.Enabled {
		a.rdb, err = redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	if cfg.Mongo.Enabled {
		a.mongo, a.mdb, err = mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	return a, nil
}

// services is the wired application core.
type services struct {
	tokens    *service.TokenService
	denylist  ports.TokenDenylist
	auth      *service.AuthService
	users     *service.UserService
	stores    *service.StoreService
	ratings   *service.RatingService
	dashboard *service.DashboardService
}

func (a *app) services() services {
	// Interfaces stay nil, not typed-nil, when a backend is disabled.
	var activity ports.ActivityLog
	if a.mdb != nil {
		activity = mongostore.NewActivityRepository(a.mdb)
	}
	var denylist ports.TokenDenylist
	authOpts := []service.AuthOption{}
	if a.rdb != nil {
		denylist = redisstore.NewDenylist(a.rdb)
		authOpts = append(authOpts, service.WithDenylist(denylist))
	}

	users := sqlstore.NewUserRepository(a.db)
	stores := sqlstore.NewStoreRepository(a.db)
	ratings := sqlstore.NewRatingRepository(a.db)
	tokens := service.NewTokenService(a.cfg.JWTSecret, service.DefaultTokenTTL)

	return services{
		tokens:    tokens,
		denylist:  denylist,
		auth:      service.NewAuthService(users, tokens, activity, logger.Component("auth"), authOpts...),
		users:     service.NewUserService(users),
		stores:    service.NewStoreService(stores, users, activity, logger.Component("stores")),
		ratings:   service.NewRatingService(ratings, stores, users, activity, logger.Component("ratings")),
		dashboard: service.NewDashboardService(sqlstore.NewStatsRepository(a.db), activity),
	}
}

// checks returns one readiness probe per configured backend.
func (a *app) checks() map[string]handler.Checker {
	checks := map[string]handler.Checker{
		"database": func(ctx context.Context) error { return sqlstore.Ping(ctx, a.db) },
	}
	if a.rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return a.rdb.Ping(ctx).Err() }
	}
	if a.mongo != nil {
		checks["mongodb"] = func(ctx context.Context) error { return mongostore.Ping(ctx, a.mongo) }
	}
	return checks
}

// migrate creates or updates the SQL schema and the Mongo indexes.
func (a *app) migrate(ctx context.Context) error {
	if err := sqlstore.Migrate(a.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate sql: %w", err)
	}
	if a.mdb != nil {
		if err := mongostore.NewActivityRepository(a.mdb).EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("migrate mongo: %w", err)
		}
	}
	return nil
}

// close releases every backend; errors are joined.
func (a *app) close() error {
	var errs []error
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Mongo.Timeout)
		errs = append(errs, a.mongo.Disconnect(ctx))
		cancel()
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.db != nil {
		errs = append(errs, sqlstore.Close(a.db))
	}
	return errors.Join(errs...)
}
