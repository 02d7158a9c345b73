// Package presence tracks which players are currently connected, backed
// by a Redis set so multiple server instances agree on who is online.
// Presence is advisory: failures are logged and never block game flow.
package presence

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// onlineSetKey is the Redis set holding the names of connected players.
const onlineSetKey = "ludo_online_players"

// Tracker wraps the Redis client for presence operations.
type Tracker struct {
	rdb    *redis.Client
	logger *logrus.Logger
}

// Connect initializes the Redis client from environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func Connect(logger *logrus.Logger) (*Tracker, error) {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Tracker{rdb: rdb, logger: logger}, nil
}

// MarkOnline records a player as connected.
func (t *Tracker) MarkOnline(ctx context.Context, name string) {
	if err := t.rdb.SAdd(ctx, onlineSetKey, name).Err(); err != nil {
		t.logger.Warnf("presence: failed to mark %s online: %v", name, err)
	}
}

// MarkOffline records a player as disconnected.
func (t *Tracker) MarkOffline(ctx context.Context, name string) {
	if err := t.rdb.SRem(ctx, onlineSetKey, name).Err(); err != nil {
		t.logger.Warnf("presence: failed to mark %s offline: %v", name, err)
	}
}

// IsOnline reports whether a player is currently connected anywhere.
func (t *Tracker) IsOnline(ctx context.Context, name string) bool {
	ok, err := t.rdb.SIsMember(ctx, onlineSetKey, name).Result()
	if err != nil {
		t.logger.Warnf("presence: lookup for %s failed: %v", name, err)
		return false
	}
	return ok
}

// OnlineCount returns how many players are connected.
func (t *Tracker) OnlineCount(ctx context.Context) int64 {
	n, err := t.rdb.SCard(ctx, onlineSetKey).Result()
	if err != nil {
		t.logger.Warnf("presence: count failed: %v", err)
		return 0
	}
	return n
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
