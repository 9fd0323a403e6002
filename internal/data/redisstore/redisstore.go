package redisstore

import (
	"context"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"github.com/redis/go-redis/v9"
)

// Store wraps one redis logical database. Entity records live in DB 0,
// chat logs in DB 1.
type Store struct {
	client *redis.Client
	DB     int
}

// Connect pings the target database and returns nil when redis is
// offline so callers can fall back to the in-memory stores.
func Connect(ctx context.Context, db int) *Store {
	logger := logging.NewLogger("RedisStore")

	client := redis.NewClient(&redis.Options{
		Addr:                  config.RedisAddr(),
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "db", db, "error", err.Error())
		return nil
	}

	store := &Store{client: client, DB: db}
	go func() {
		<-ctx.Done()
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
	}()
	return store
}

// NewTestStore wraps an externally constructed client (miniredis).
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
