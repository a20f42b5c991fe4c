package redis

import (
	"approval-api/internal/config"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Store struct {
	client *redis.Client
}

// Connect dials Redis and fails if the server does not answer PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr(), err)
	}

	log.WithField("addr", cfg.Addr()).Info("Connected to Redis successfully")
	return &Store{client: client}, nil
}

func (r *Store) Close() error {
	return r.client.Close()
}
