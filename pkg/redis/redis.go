package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/config"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// SessionRevoker records logged-out session token ids until they would have expired anyway.
type SessionRevoker struct {
	client *redis.Client
}

func NewSessionRevoker(c *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: c}
}

// Revoke marks the token id as revoked for ttl
func (r *SessionRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	logger.Debug("Revoking session", map[string]interface{}{
		"expiry": ttl.String(),
	})

	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to revoke session", err, nil)
		return err
	}
	return nil
}

func (r *SessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	val, err := r.client.Get(ctx, revokedKeyPrefix+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check session revocation", err, nil)
		return false, err
	}
	return val == "revoked", nil
}
