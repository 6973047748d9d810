package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CustomerProfile is the last-used checkout identity for a phone number,
// used to prefill the checkout form on a returning customer's next order
type CustomerProfile struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

// CustomerStore persists customer checkout profiles keyed by phone number
type CustomerStore interface {
	Get(ctx context.Context, phone string) (*CustomerProfile, bool)
	Save(ctx context.Context, profile CustomerProfile) error
}

const keyCustomerPrefix = "jx4:cliente:"

// RedisCustomerStore implements CustomerStore on Redis
type RedisCustomerStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCustomerStore creates a Redis-backed customer profile store
func NewRedisCustomerStore(client *redis.Client, logger *zap.Logger) *RedisCustomerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCustomerStore{client: client, logger: logger}
}

// Get returns the stored profile for a phone number. A missing or
// malformed entry is a miss, never an error.
func (s *RedisCustomerStore) Get(ctx context.Context, phone string) (*CustomerProfile, bool) {
	if phone == "" {
		return nil, false
	}
	raw, err := s.client.Get(ctx, keyCustomerPrefix+phone).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Customer profile read failed", zap.String("phone", phone), zap.Error(err))
		}
		return nil, false
	}

	var profile CustomerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.logger.Warn("Discarding malformed customer profile", zap.String("phone", phone), zap.Error(err))
		return nil, false
	}
	return &profile, true
}

// Save stores the profile under its phone number
func (s *RedisCustomerStore) Save(ctx context.Context, profile CustomerProfile) error {
	if profile.Phone == "" {
		return fmt.Errorf("customer profile requires a phone number")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyCustomerPrefix+profile.Phone, raw, 0).Err()
}

// Ensure RedisCustomerStore implements CustomerStore
var _ CustomerStore = (*RedisCustomerStore)(nil)
