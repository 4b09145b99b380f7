package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"jewel-backend/internal/config"
)

// CurrentRatesKey caches the serialized current-rates response. Rates change
// a few times a day at most but are read on every billing screen.
const CurrentRatesKey = "rates:current"

const ratesTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// client nil and every cache call becomes a no-op.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedRates returns the cached current-rates payload if available
func GetCachedRates(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, CurrentRatesKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheRates caches the current-rates payload
func CacheRates(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, CurrentRatesKey, data, ratesTTL)
}

// InvalidateRates clears the rates cache after a rate update
func InvalidateRates(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, CurrentRatesKey)
}
