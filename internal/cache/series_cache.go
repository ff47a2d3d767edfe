package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsconsole/backend/internal/config"
	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
)

const (
	seriesKeyPrefix     = "forecast:series"
	seriesScanBatchSize = 100
)

// SeriesCache memoizes generated forecast row sets. The engine itself is
// pure; caching is purely a caller-side cost optimization, keyed on the
// filter and the generation day so a stale "today" never leaks.
type SeriesCache interface {
	GetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time) ([]forecast.ForecastRow, bool, error)
	SetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time, rows []forecast.ForecastRow) error
	InvalidateAll(ctx context.Context) error
}

type redisSeriesCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSeriesCache struct{}

func NewSeriesCache(cfg config.CacheConfig) (SeriesCache, error) {
	if !cfg.Enabled {
		return &noopSeriesCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSeriesCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopSeriesCache() SeriesCache {
	return &noopSeriesCache{}
}

func (c *redisSeriesCache) GetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time) ([]forecast.ForecastRow, bool, error) {
	key := buildSeriesKey(filter, day)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []forecast.ForecastRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode forecast series cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisSeriesCache) SetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time, rows []forecast.ForecastRow) error {
	key := buildSeriesKey(filter, day)
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode forecast series cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSeriesCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, seriesKeyPrefix, seriesScanBatchSize)
}

func (n *noopSeriesCache) GetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time) ([]forecast.ForecastRow, bool, error) {
	return nil, false, nil
}

func (n *noopSeriesCache) SetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time, rows []forecast.ForecastRow) error {
	return nil
}

func (n *noopSeriesCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSeriesKey(filter domain.SeriesFilter, day time.Time) string {
	return fmt.Sprintf("%s:%s", seriesKeyPrefix, seriesFilterHash(filter, day))
}

func seriesFilterHash(filter domain.SeriesFilter, day time.Time) string {
	parts := []string{
		"day=" + day.Format("2006-01-02"),
	}

	if filter.LocationID != "" {
		parts = append(parts, "location="+strings.TrimSpace(filter.LocationID))
	}
	if filter.HorizonMonths > 0 {
		parts = append(parts, fmt.Sprintf("horizon=%d", filter.HorizonMonths))
	}
	if filter.GroupBy != "" {
		parts = append(parts, "group_by="+strings.ToLower(strings.TrimSpace(filter.GroupBy)))
	}

	if len(filter.ProductIDs) > 0 {
		parts = append(parts, "product_ids="+joinStrings(filter.ProductIDs))
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func joinStrings(values []string) string {
	c := append([]string(nil), values...)
	for i := range c {
		c[i] = strings.TrimSpace(strings.ToLower(c[i]))
	}
	sort.Strings(c)
	return strings.Join(c, ",")
}
