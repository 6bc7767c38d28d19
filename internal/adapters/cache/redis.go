package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StatusConnected   = "connected"
	StatusUnreachable = "unreachable"
	StatusDisabled    = "disabled"
)

// NewRedisClient connects and pings Redis. The caller owns the client.
func NewRedisClient(host, port, password string, dbIndex int) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// Status reports the health of an optional client for /health.
func Status(ctx context.Context, rdb *redis.Client) string {
	if rdb == nil {
		return StatusDisabled
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return StatusUnreachable
	}
	return StatusConnected
}
