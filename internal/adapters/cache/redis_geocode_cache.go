package cache

import (
	"context"
	"errors"
	"fmt"
	"moving-presurvey-service/internal/domain"
	"moving-presurvey-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "presurvey:geocode:"

type cachedPlace struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// RedisGeocodeCache stores live geocoding results as JSON strings with a TTL.
type RedisGeocodeCache struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

func NewRedisGeocodeCache(client redis.UniversalClient, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func redisKey(address string) string { return redisKeyPrefix + address }

// Fetch cached places with a single MGET. Misses and undecodable entries are skipped.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Place, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Place{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = redisKey(a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Place, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var cp cachedPlace
		if err := json.Unmarshal([]byte(s), &cp); err != nil {
			continue
		}
		out[uniq[i]] = domain.Place{Label: cp.Label, Lat: cp.Lat, Lng: cp.Lng}
	}

	return out, nil
}

// Store address -> place mappings in one pipeline.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Place) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.PutMany")(&err)

	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, p := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		b, err := json.Marshal(cachedPlace{Label: p.Label, Lat: p.Lat, Lng: p.Lng})
		if err != nil {
			return fmt.Errorf("insert geocode cache address=%q: encode: %w", addr, err)
		}
		pipe.Set(ctx, redisKey(addr), b, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}
	return nil
}
