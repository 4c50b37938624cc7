package redisStore

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[int]*Store)
	mu        sync.Mutex
	logger    *logger_i.Logger
	closeOnce sync.Once
)

// Store is a thin wrapper over one logical redis DB.
type Store struct {
	client *redis.Client
	Type   int
}

// GetRedisStore returns the singleton store for a DB number, or nil when the
// server is unreachable so callers can fall back to local storage.
func GetRedisStore(ctx context.Context, dbType int) *Store {
	mu.Lock()
	defer mu.Unlock()

	if instance, exists := instances[dbType]; exists {
		return instance
	}
	return createNewStore(ctx, dbType)
}

func createNewStore(ctx context.Context, dbType int) *Store {
	if logger == nil {
		logger = logger_i.NewLogger("RedisStore")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = config.RedisAddr
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		DB:                    dbType,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisReadTimeout,
		WriteTimeout:          config.RedisWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*config.RedisReadTimeout/10)
	defer cancel()
	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis is offline", "error", err.Error())
		return nil
	}

	logger.Info("Redis store connected", "db", dbType)

	newStore := &Store{client: newClient, Type: dbType}
	instances[dbType] = newStore
	closeOnce.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	mu.Lock()
	defer mu.Unlock()
	for _, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
	}
	logger.Info("Redis stores closed")
}

func (s *Store) HSet(ctx context.Context, key, field string, value []byte) error {
	return s.client.HSet(ctx, key, field, value).Err()
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return s.client.HGetAll(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// NewTestStore wires an arbitrary client; for _test.go files only.
func NewTestStore(client *redis.Client) *Store {
	if logger == nil {
		logger = logger_i.NewLogger("RedisStore")
	}
	return &Store{client: client}
}
