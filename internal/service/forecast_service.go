package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/opsconsole/backend/internal/cache"
	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/repository"
)

const baselineWorkers = 8

type ForecastService struct {
	repo           repository.ForecastRepository
	sales          repository.SalesHistoryRepository
	cache          cache.SeriesCache
	baselineWindow int
}

func NewForecastService(repo repository.ForecastRepository, sales repository.SalesHistoryRepository, cacheImpl cache.SeriesCache, baselineWindowDays int) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSeriesCache()
	}
	if baselineWindowDays <= 0 {
		baselineWindowDays = forecast.DefaultBaselineWindowDays
	}
	return &ForecastService{repo: repo, sales: sales, cache: cacheImpl, baselineWindow: baselineWindowDays}
}

// GetSeries loads profiles and adjustments, resolves each product's
// effective adjustment set and generates the forecast series. Results are
// memoized per (filter, day); the generation itself is pure.
func (s *ForecastService) GetSeries(ctx context.Context, filter domain.SeriesFilter, now time.Time) ([]forecast.ForecastRow, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	if rows, ok, err := s.cache.GetSeries(ctx, filter, day); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast series: cache get failed")
	}

	rows, err := s.generateSeries(ctx, filter, now)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSeries(ctx, filter, day, rows); err != nil {
		log.Warn().Err(err).Msg("forecast series: cache set failed")
	}

	return rows, nil
}

func (s *ForecastService) generateSeries(ctx context.Context, filter domain.SeriesFilter, now time.Time) ([]forecast.ForecastRow, error) {
	profiles, err := s.repo.GetProfiles(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []forecast.ForecastRow{}, nil
	}

	accountAdjs, err := s.repo.GetAccountAdjustments(ctx)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		productIDs = append(productIDs, p.ProductID)
	}

	productAdjs, err := s.repo.GetProductAdjustments(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	effective := make(map[string][]forecast.EffectiveAdjustment, len(profiles))
	for _, p := range profiles {
		adjs, inconsistencies := forecast.Resolve(accountAdjs, productAdjs[p.ProductID])
		for _, inc := range inconsistencies {
			log.Warn().
				Str("product_id", inc.ProductID).
				Str("account_adjustment_id", inc.AccountAdjustmentID).
				Msg("adjustment data inconsistency: " + inc.Detail)
		}
		effective[p.ProductID] = adjs
	}

	return forecast.Generate(profiles, effective, filter.HorizonMonths, forecast.GroupBy(filter.GroupBy), now), nil
}

// RecomputeBaselines re-derives every product's baseline daily rate from
// the trailing sales window and persists it, then drops any cached series.
// Runs after each sales-history ingest.
func (s *ForecastService) RecomputeBaselines(ctx context.Context, locationID string, asOf time.Time) error {
	productIDs, err := s.sales.ListProductIDs(ctx)
	if err != nil {
		return err
	}

	since := asOf.AddDate(0, 0, -(s.baselineWindow - 1))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(baselineWorkers)

	for _, productID := range productIDs {
		productID := productID
		g.Go(func() error {
			entries, err := s.sales.GetEntriesSince(gctx, productID, since)
			if err != nil {
				return fmt.Errorf("baseline recompute for %s: %w", productID, err)
			}

			rate := forecast.DeriveDailyRate(entries, s.baselineWindow, asOf)
			if err := s.repo.UpdateDailyRate(gctx, productID, locationID, rate); err != nil {
				return fmt.Errorf("baseline recompute for %s: %w", productID, err)
			}

			log.Debug().Str("product_id", productID).Float64("daily_rate", rate).Msg("baseline recomputed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("forecast series: cache invalidation failed")
	}

	return nil
}
