package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SnapshotStore persists the catalog snapshot across process restarts.
// Load returns ok=false on a miss; a malformed stored entry is treated
// the same as a miss, never as an error.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, bool)
	Save(ctx context.Context, snap Snapshot) error
}

// Fixed keys for the persisted snapshot slices
const (
	keySnapshotProducts    = "jx4:snapshot:productos"
	keySnapshotDepartments = "jx4:snapshot:departamentos"
	keySnapshotConfig      = "jx4:snapshot:configuracion"
)

// RedisSnapshotStore implements SnapshotStore on Redis with one key per
// slice, so a corrupt entry only costs that slice
type RedisSnapshotStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSnapshotStore creates a Redis-backed snapshot store
func NewRedisSnapshotStore(client *redis.Client, logger *zap.Logger) *RedisSnapshotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSnapshotStore{client: client, logger: logger}
}

// NewRedisClient connects a Redis client and verifies the connection
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Load reads the persisted snapshot. Any slice that is missing or fails
// to decode is skipped; ok is true when at least one slice decoded.
func (s *RedisSnapshotStore) Load(ctx context.Context) (Snapshot, bool) {
	var snap Snapshot
	any := false

	if s.loadKey(ctx, keySnapshotProducts, &snap.Products) {
		any = true
	}
	if s.loadKey(ctx, keySnapshotDepartments, &snap.Departments) {
		any = true
	}
	if s.loadKey(ctx, keySnapshotConfig, &snap.Config) {
		any = true
	}
	return snap, any
}

func (s *RedisSnapshotStore) loadKey(ctx context.Context, key string, dest any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Persisted snapshot read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Treat as a miss, not an error
		s.logger.Warn("Discarding malformed persisted snapshot entry",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save writes all three slices. The write is best-effort; a failed slice
// is logged and the rest still go through.
func (s *RedisSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	var firstErr error
	save := func(key string, v any) {
		raw, err := json.Marshal(v)
		if err == nil {
			err = s.client.Set(ctx, key, raw, 0).Err()
		}
		if err != nil {
			s.logger.Warn("Persisted snapshot write failed", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	save(keySnapshotProducts, snap.Products)
	save(keySnapshotDepartments, snap.Departments)
	if snap.Config != nil {
		save(keySnapshotConfig, snap.Config)
	}
	return firstErr
}

// Ensure RedisSnapshotStore implements SnapshotStore
var _ SnapshotStore = (*RedisSnapshotStore)(nil)
