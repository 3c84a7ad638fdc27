package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores generated insights by key.
type Cache interface {
	Get(ctx context.Context, key string) (Insights, bool, error)
	Set(ctx context.Context, key string, value Insights, ttl time.Duration) error
}

const defaultKeyPrefix = "insights:"

// RedisCache keeps insights as JSON strings in Redis.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache wraps client. An empty prefix uses "insights:".
func NewRedisCache(client *redis.Client, keyPrefix string) (*RedisCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

// DialRedis creates a client for addr and pings it.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (Insights, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Insights{}, false, nil
	}
	if err != nil {
		return Insights{}, false, fmt.Errorf("redis get: %w", err)
	}
	var out Insights
	if err := json.Unmarshal(raw, &out); err != nil {
		return Insights{}, false, fmt.Errorf("decode cached insights: %w", err)
	}
	return out, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value Insights, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// CacheKey hashes everything that influences a generated review.
func CacheKey(model string, in Input) string {
	payload, _ := json.Marshal(struct {
		Model        string   `json:"m"`
		Document     any      `json:"d"`
		TargetRole   string   `json:"r"`
		Requirements []string `json:"q"`
	}{model, in.Document, in.TargetRole, in.Requirements})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
