package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/repository"
)

type ReplenishmentService struct {
	routes   repository.RouteRepository
	products repository.ProductRepository
}

func NewReplenishmentService(routes repository.RouteRepository, products repository.ProductRepository) *ReplenishmentService {
	return &ReplenishmentService{routes: routes, products: products}
}

// ProjectTimeline evaluates an inbound purchase suggestion against the
// configured shipping routes and returns the detail-view payload: gap
// metric, display status, ranked reasoning and order value.
func (s *ReplenishmentService) ProjectTimeline(ctx context.Context, suggestion forecast.ReplenishmentSuggestion, today time.Time) (*domain.TimelineResult, error) {
	routes, err := s.routes.GetRoutes(ctx)
	if err != nil {
		// Missing route data is not fatal; the projector has defaults.
		log.Warn().Err(err).Msg("replenishment: route lookup failed, projecting with defaults")
		routes = nil
	}

	metric := forecast.Project(suggestion, routes, today)
	status := forecast.StatusFor(metric)

	return &domain.TimelineResult{
		Metric:      metric,
		Status:      string(status),
		StatusLabel: domain.TimelineStatusLabel(status),
		TopReasons:  forecast.TopReasons(suggestion.Reasoning, forecast.DefaultMaxReasons),
		OrderValue:  s.orderValue(ctx, suggestion.ProductID, suggestion.RecommendedQty),
	}, nil
}

// ProjectTransferTimeline is the intra-network variant; transfers move
// owned stock so no order value is attached.
func (s *ReplenishmentService) ProjectTransferTimeline(_ context.Context, transfer forecast.TransferSuggestion, today time.Time) *domain.TimelineResult {
	metric := forecast.ProjectTransfer(transfer, today)
	status := forecast.StatusFor(metric)

	return &domain.TimelineResult{
		Metric:      metric,
		Status:      string(status),
		StatusLabel: domain.TimelineStatusLabel(status),
		TopReasons:  forecast.TopReasons(transfer.Reasoning, forecast.DefaultMaxReasons),
	}
}

func (s *ReplenishmentService) orderValue(ctx context.Context, productID string, qty int) decimal.Decimal {
	if s.products == nil || productID == "" || qty <= 0 {
		return decimal.Zero
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("replenishment: unit cost lookup failed")
		return decimal.Zero
	}
	if product == nil {
		return decimal.Zero
	}

	return product.UnitCost.Mul(decimal.NewFromInt(int64(qty)))
}
