package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// AccountCacheRepository caches account snapshots in Redis for the read path.
// Every ledger mutation invalidates the affected entries, so a hit is at
// most TTL-stale and never reordered.
type AccountCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewAccountCacheRepository creates a cache with the given snapshot TTL.
func NewAccountCacheRepository(client *redis.Client, expiration time.Duration) *AccountCacheRepository {
	return &AccountCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func cacheKey(accountID string) string {
	return fmt.Sprintf("pigeon:%s", accountID)
}

// Get returns the cached snapshot for an account id, or nil on a miss.
func (r *AccountCacheRepository) Get(ctx context.Context, accountID string) (*models.Pigeon, error) {
	key := cacheKey(accountID)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		return nil, err
	}

	var p models.Pigeon
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		logger.Log.Errorw("failed to decode cached snapshot", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", p.ID,
		"error", nil,
	)

	return &p, nil
}

// Set stores a snapshot with the configured expiration.
func (r *AccountCacheRepository) Set(ctx context.Context, p models.Pigeon) error {
	key := cacheKey(p.ID)

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Delete invalidates the cached snapshot for an account id.
func (r *AccountCacheRepository) Delete(ctx context.Context, accountID string) error {
	key := cacheKey(accountID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
