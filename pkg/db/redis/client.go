package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func (r *Store) ZAdd(ctx context.Context, key string, member string, score float64) error {
	add := r.client.ZAdd(ctx, key, redis.Z{
		Score:  score,
		Member: member,
	})

	return add.Err()
}

func (r *Store) ZRangeByScoreWithScores(ctx context.Context, key string, min string, max string) ([]redis.Z, error) {
	members, err := r.client.ZRangeByScoreWithScores(ctx, key, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}

	return members, nil
}

func (r *Store) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
