package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sagarsaathi/saathi/internal/pkg/apperror"
	"github.com/sagarsaathi/saathi/internal/pkg/constants"
	"github.com/sagarsaathi/saathi/internal/pkg/database"
	"github.com/sagarsaathi/saathi/internal/pkg/models"
	"github.com/sagarsaathi/saathi/services/trips"
)

// setIfNewer keeps the cached position with the latest server timestamp
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'ts')
if current and tonumber(current) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'ts', ARGV[2], 'data', ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// LocationCache keeps the latest position per trip in Redis
type LocationCache struct {
	redisClient *database.RedisClient
	ttl         time.Duration
}

// NewLocationCache creates a Redis-backed location cache
func NewLocationCache(redisClient *database.RedisClient, ttl time.Duration) trips.LocationCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &LocationCache{redisClient: redisClient, ttl: ttl}
}

func locationKey(tripID string) string {
	return fmt.Sprintf(constants.KeyTripLocation, tripID)
}

// SetLocation stores loc unless a newer position is already cached
func (c *LocationCache) SetLocation(ctx context.Context, tripID string, loc models.LastKnownLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	err = setIfNewer.Run(ctx, c.redisClient.GetClient(),
		[]string{locationKey(tripID)},
		string(data), loc.UpdatedAt.UnixNano(), c.ttl.Milliseconds()).Err()
	if err != nil {
		return apperror.Persistence(err, "failed to cache location")
	}
	return nil
}

// GetLocation returns the cached position or nil on a miss
func (c *LocationCache) GetLocation(ctx context.Context, tripID string) (*models.LastKnownLocation, error) {
	data, err := c.redisClient.GetClient().HGet(ctx, locationKey(tripID), "data").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperror.Persistence(err, "failed to read cached location")
	}

	var loc models.LastKnownLocation
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached location: %w", err)
	}
	return &loc, nil
}

// DeleteLocation evicts the cached position
func (c *LocationCache) DeleteLocation(ctx context.Context, tripID string) error {
	if err := c.redisClient.Delete(ctx, locationKey(tripID)); err != nil {
		return apperror.Persistence(err, "failed to evict cached location")
	}
	return nil
}
