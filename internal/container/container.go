package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inmobo/inmobo-api/config"
	"github.com/inmobo/inmobo-api/internal/infrastructure/postgres"
	"github.com/inmobo/inmobo-api/internal/realtime"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

// Container holds the shared infrastructure clients, built once at startup
// and handed to the modules explicitly. Optional backends (RabbitMQ,
// Elasticsearch, GCS) may be nil when unconfigured or unreachable; the
// services degrade around them.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	PG    *pgxpool.Pool
	Redis *redis.Client
	GCS   *storage.Client

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Rabbit *helpers.RabbitPublisher
	ES     *elasticsearch.Client

	Hub *realtime.Hub
}

// Build constructs every client. Postgres and Redis are required; the rest
// log a warning and stay nil on failure.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	c := &Container{
		Cfg:     cfg,
		Logger:  logger,
		PG:      pool,
		Redis:   rdb,
		JWT:     helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Hub:     realtime.NewHub(logger),
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable, photo uploads disabled")
		} else {
			c.GCS = gcs
		}
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, emails disabled")
		} else {
			c.Rabbit = pub
		}
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable, search disabled")
	} else {
		c.ES = es
	}

	return c, nil
}

func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
