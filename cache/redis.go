package cache

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// Process-local fallback used when no Redis is configured (local dev without
// docker, tests). Same expiring-KV semantics, not shared across instances.
var (
	memMu    sync.Mutex
	memStore = map[string]memEntry{}
)

type memEntry struct {
	value   []byte
	expires time.Time
}

// InitFromEnv initializes Redis using either:
// - REDIS_URL (hosted Redis)
// - VALKEY_URL (hosted Valkey with TLS)
// - REDIS_ADDR / local fallback
func InitFromEnv() error {
	redisURL := os.Getenv("REDIS_URL")
	valkeyURL := os.Getenv("VALKEY_URL")

	switch {
	case redisURL != "":
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		Client = redis.NewClient(opt)

	case valkeyURL != "":
		opt, err := redis.ParseURL(valkeyURL)
		if err != nil {
			return fmt.Errorf("failed to parse VALKEY_URL: %w", err)
		}
		Client = redis.NewClient(opt)

	default:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			// No Redis anywhere in the environment: stay on the
			// in-process store.
			Client = nil
			return nil
		}
		Client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			Username: os.Getenv("REDIS_USERNAME"),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		Client = nil
		return fmt.Errorf("failed to connect to redis/valkey: %w", err)
	}

	return nil
}

// Get returns the stored value for key, or "" when the key is absent or
// expired.
func Get(ctx context.Context, key string) (string, error) {
	if Client == nil {
		memMu.Lock()
		defer memMu.Unlock()
		entry, ok := memStore[key]
		if !ok || time.Now().After(entry.expires) {
			delete(memStore, key)
			return "", nil
		}
		return string(entry.value), nil
	}

	val, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if Client == nil {
		memMu.Lock()
		defer memMu.Unlock()
		memStore[key] = memEntry{value: value, expires: time.Now().Add(ttl)}
		return nil
	}
	return Client.Set(ctx, key, value, ttl).Err()
}

func Delete(ctx context.Context, key string) error {
	if Client == nil {
		memMu.Lock()
		defer memMu.Unlock()
		delete(memStore, key)
		return nil
	}
	return Client.Del(ctx, key).Err()
}

func DeleteByPrefix(ctx context.Context, prefix string) error {
	if Client == nil {
		memMu.Lock()
		defer memMu.Unlock()
		for key := range memStore {
			if strings.HasPrefix(key, prefix) {
				delete(memStore, key)
			}
		}
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Clear drops every cached entry. Used by tests and operational tooling;
// normal request handling never invalidates on writes.
func Clear(ctx context.Context) error {
	if Client == nil {
		memMu.Lock()
		defer memMu.Unlock()
		memStore = map[string]memEntry{}
		return nil
	}
	return Client.FlushDB(ctx).Err()
}
