package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

func NewRedis(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// ConnectRedis returns a client for addr once it answers PING.
func ConnectRedis(ctx context.Context, addr string, db int, policy RetryPolicy) (*redis.Client, error) {
	return withRetry(ctx, "redis", policy, func() (*redis.Client, error) {
		client := NewRedis(addr, "", db)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, err
		}
		return client, nil
	})
}
