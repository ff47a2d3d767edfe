package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
)

type fakeForecastRepo struct {
	mu          sync.Mutex
	profiles    []forecast.ForecastProfile
	accountAdjs []forecast.AccountAdjustment
	productAdjs map[string][]forecast.ProductAdjustment
	profileGets int
	rates       map[string]float64
}

func (f *fakeForecastRepo) GetProfiles(ctx context.Context, filter domain.SeriesFilter) ([]forecast.ForecastProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileGets++
	return f.profiles, nil
}

func (f *fakeForecastRepo) GetAccountAdjustments(ctx context.Context) ([]forecast.AccountAdjustment, error) {
	return f.accountAdjs, nil
}

func (f *fakeForecastRepo) GetProductAdjustments(ctx context.Context, productIDs []string) (map[string][]forecast.ProductAdjustment, error) {
	return f.productAdjs, nil
}

func (f *fakeForecastRepo) UpdateDailyRate(ctx context.Context, productID, locationID string, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rates == nil {
		f.rates = map[string]float64{}
	}
	f.rates[productID] = rate
	return nil
}

type fakeSalesRepo struct {
	entries map[string][]forecast.SalesHistoryEntry
}

func (f *fakeSalesRepo) InsertEntries(ctx context.Context, entries []forecast.SalesHistoryEntry) error {
	return nil
}

func (f *fakeSalesRepo) GetEntriesSince(ctx context.Context, productID string, since time.Time) ([]forecast.SalesHistoryEntry, error) {
	return f.entries[productID], nil
}

func (f *fakeSalesRepo) ListProductIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

type recordingCache struct {
	mu          sync.Mutex
	stored      map[string][]forecast.ForecastRow
	invalidated bool
}

func cacheKey(filter domain.SeriesFilter, day time.Time) string {
	return filter.LocationID + "|" + filter.GroupBy + "|" + day.Format("2006-01-02")
}

func (c *recordingCache) GetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time) ([]forecast.ForecastRow, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.stored[cacheKey(filter, day)]
	return rows, ok, nil
}

func (c *recordingCache) SetSeries(ctx context.Context, filter domain.SeriesFilter, day time.Time, rows []forecast.ForecastRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored == nil {
		c.stored = map[string][]forecast.ForecastRow{}
	}
	c.stored[cacheKey(filter, day)] = rows
	return nil
}

func (c *recordingCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = nil
	c.invalidated = true
	return nil
}

func testProfile(t *testing.T, productID string, rate float64) forecast.ForecastProfile {
	t.Helper()
	p, err := forecast.NewForecastProfile(productID, "SKU-"+productID, "Product "+productID, "loc-1", rate, 0, nil, 0, forecast.ConfidenceHigh, true)
	require.NoError(t, err)
	return p
}

func TestGetSeriesGeneratesRows(t *testing.T) {
	repo := &fakeForecastRepo{profiles: []forecast.ForecastProfile{testProfile(t, "p1", 5)}}
	svc := NewForecastService(repo, &fakeSalesRepo{}, nil, 0)

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	filter := domain.SeriesFilter{HorizonMonths: 6, GroupBy: string(forecast.GroupByProduct)}

	rows, err := svc.GetSeries(context.Background(), filter, now)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "p1", rows[0].ProductID)
	assert.Equal(t, time.March, rows[0].Month)
	assert.Equal(t, 2026, rows[0].Year)
}

func TestGetSeriesUsesCache(t *testing.T) {
	repo := &fakeForecastRepo{profiles: []forecast.ForecastProfile{testProfile(t, "p1", 5)}}
	cache := &recordingCache{}
	svc := NewForecastService(repo, &fakeSalesRepo{}, cache, 0)

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	filter := domain.SeriesFilter{HorizonMonths: 3, GroupBy: string(forecast.GroupByProduct)}

	first, err := svc.GetSeries(context.Background(), filter, now)
	require.NoError(t, err)

	second, err := svc.GetSeries(context.Background(), filter, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.profileGets, "second call should be served from cache")
}

func TestGetSeriesLogsInconsistenciesButStillProjects(t *testing.T) {
	mult := 1.5
	repo := &fakeForecastRepo{
		profiles: []forecast.ForecastProfile{testProfile(t, "p1", 5)},
		accountAdjs: []forecast.AccountAdjustment{{Adjustment: forecast.Adjustment{
			ID:        "acct-1",
			StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
			Effect:    forecast.EffectMultiply,
		}}},
		productAdjs: map[string][]forecast.ProductAdjustment{
			"p1": {
				{
					Adjustment:          forecast.Adjustment{ID: "ovr-1", Effect: forecast.EffectMultiply, Multiplier: &mult},
					ProductID:           "p1",
					AccountAdjustmentID: "acct-1",
				},
				{
					Adjustment:          forecast.Adjustment{ID: "opt-1"},
					ProductID:           "p1",
					AccountAdjustmentID: "acct-1",
					IsOptedOut:          true,
				},
			},
		},
	}
	svc := NewForecastService(repo, &fakeSalesRepo{}, nil, 0)

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	rows, err := svc.GetSeries(context.Background(), domain.SeriesFilter{HorizonMonths: 1}, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Opt-out wins the conflict, so March stays at the baseline.
	assert.Equal(t, 155, rows[0].Units)
}

func TestRecomputeBaselinesUpdatesRatesAndInvalidatesCache(t *testing.T) {
	repo := &fakeForecastRepo{profiles: []forecast.ForecastProfile{testProfile(t, "p1", 5)}}
	cache := &recordingCache{stored: map[string][]forecast.ForecastRow{"stale": nil}}

	asOf := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	sales := &fakeSalesRepo{entries: map[string][]forecast.SalesHistoryEntry{
		"p1": {
			{ProductID: "p1", Date: asOf.AddDate(0, 0, -1), UnitsSold: 45},
			{ProductID: "p1", Date: asOf, UnitsSold: 45},
		},
	}}

	svc := NewForecastService(repo, sales, cache, 90)

	err := svc.RecomputeBaselines(context.Background(), "loc-1", asOf)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, repo.rates["p1"], 1e-9)
	assert.True(t, cache.invalidated)
}
