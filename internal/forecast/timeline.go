package forecast

import (
	"math"
	"regexp"
	"time"
)

// Lead-time defaults applied when a suggestion draft leaves a leg blank.
const (
	DefaultSupplierLeadDays = 30
	DefaultRouteTransitDays = 21
	DefaultFinalLegDays     = 3

	// FallbackWarehouse is used when the warehouse name cannot be
	// extracted from the route name.
	FallbackWarehouse = "Warehouse"
)

// TimelineStatus classifies a projected timeline for display.
type TimelineStatus string

const (
	StatusCritical TimelineStatus = "critical"
	StatusWarning  TimelineStatus = "warning"
	StatusHealthy  TimelineStatus = "healthy"
)

var routeWarehousePattern = regexp.MustCompile(`to\s+(.+?)\s+(Ocean|Air|Ground|Express|Rail|Sea)\s*$`)

// ExtractWarehouse pulls the destination warehouse name out of a route
// name of the form "... to <Warehouse Name> <Method>". When the pattern
// does not match it falls back to the literal "Warehouse", which in turn
// degrades route matching to the default final-leg transit.
func ExtractWarehouse(routeName string) string {
	m := routeWarehousePattern.FindStringSubmatch(routeName)
	if m == nil {
		return FallbackWarehouse
	}
	return m[1]
}

// finalLegDays resolves the last transit leg from the route's warehouse to
// the destination location. A default route wins over any other match;
// missing route data is not an error and falls back to three days.
func finalLegDays(routes []ShippingRoute, warehouse, destinationID string) int {
	var best *ShippingRoute
	for i := range routes {
		r := &routes[i]
		if r.Origin != warehouse || r.DestinationLocationID != destinationID {
			continue
		}
		if r.IsDefault {
			return r.TransitDays
		}
		if best == nil {
			best = r
		}
	}
	if best != nil {
		return best.TransitDays
	}
	return DefaultFinalLegDays
}

// Project combines current stock, the daily sales rate and the full
// lead-time breakdown (production + transit + final leg) into a stockout
// gap metric for an inbound purchase suggestion.
func Project(s ReplenishmentSuggestion, routes []ShippingRoute, today time.Time) StockoutGapMetric {
	supplierLead := s.SupplierLeadTimeDays
	if supplierLead <= 0 {
		supplierLead = DefaultSupplierLeadDays
	}
	routeTransit := s.RouteTransitDays
	if routeTransit <= 0 {
		routeTransit = DefaultRouteTransitDays
	}

	warehouse := ExtractWarehouse(s.RouteName)
	finalLeg := finalLegDays(routes, warehouse, s.DestinationLocationID)

	totalLead := supplierLead + routeTransit + finalLeg

	return projectStock(s.CurrentStock, s.DailySalesRate, s.RecommendedQty, totalLead, s.StockoutDate, today)
}

// ProjectTransfer is the intra-network variant: a single transit leg taken
// directly from the suggestion, no production lead and no route lookup.
func ProjectTransfer(t TransferSuggestion, today time.Time) StockoutGapMetric {
	return projectStock(t.CurrentStock, t.DailySalesRate, t.RecommendedQty, t.TransitDays, t.StockoutDate, today)
}

func projectStock(currentStock int, dailyRate float64, recommendedQty, totalLeadDays int, stockoutDate *time.Time, today time.Time) StockoutGapMetric {
	arrival := truncateToDay(today).AddDate(0, 0, totalLeadDays)

	metric := StockoutGapMetric{
		StockoutDate:      stockoutDate,
		ArrivalDate:       arrival,
		TotalLeadTimeDays: totalLeadDays,
	}

	if stockoutDate != nil {
		gap := arrival.Sub(truncateToDay(*stockoutDate)).Hours() / 24
		metric.GapDays = int(math.Ceil(gap))
		// Arrival strictly after stockout is a failure; landing on the
		// stockout date itself is not.
		metric.WillStockOut = metric.GapDays > 0
	}

	depletion := int(math.Round(dailyRate * float64(totalLeadDays)))
	onArrival := currentStock - depletion
	if onArrival < 0 {
		onArrival = 0
	}
	metric.ProjectedStockOnArrival = onArrival + recommendedQty

	if dailyRate > 0 {
		metric.CoverageAfterArrival = int(math.Round(float64(metric.ProjectedStockOnArrival) / dailyRate))
	}

	return metric
}

// StatusFor classifies a projected timeline: critical when the order lands
// after the stockout, warning when it lands less than a week ahead of it,
// healthy otherwise.
func StatusFor(m StockoutGapMetric) TimelineStatus {
	switch {
	case m.WillStockOut:
		return StatusCritical
	case m.GapDays > -7:
		return StatusWarning
	default:
		return StatusHealthy
	}
}
