package forecast

import "time"

// GroupBy controls how generated forecast rows are ordered for display.
type GroupBy string

const (
	GroupByProduct GroupBy = "product"
	GroupByMonth   GroupBy = "month"
	GroupByWeek    GroupBy = "week"
)

// AdjustmentEffect is what an adjustment does to the days it covers.
type AdjustmentEffect string

const (
	EffectMultiply AdjustmentEffect = "multiply"
	EffectExclude  AdjustmentEffect = "exclude"
)

// Confidence levels for a forecast profile.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// SalesHistoryEntry is a single day of recorded sales for a product.
// The engine only reads these; the log is append-only upstream.
type SalesHistoryEntry struct {
	ProductID string    `json:"product_id"`
	Date      time.Time `json:"date"`
	UnitsSold int       `json:"units_sold"`
}

// ForecastProfile holds the per-(product, location) inputs the rate
// calculator works from. Profiles are validated once at construction;
// the calculators assume a valid profile.
type ForecastProfile struct {
	ProductID   string `json:"product_id" validate:"required"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	LocationID  string `json:"location_id"`

	// DailyRate is the derived baseline demand in units/day.
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`

	// ManualOverride replaces DailyRate when set. Nil means no override;
	// legacy rows store zero for "unset" and the repository maps that to
	// nil before the profile reaches the engine.
	ManualOverride *float64 `json:"manual_override,omitempty"`

	// SeasonalMultipliers is indexed by calendar month (0 = January).
	SeasonalMultipliers []float64 `json:"seasonal_multipliers" validate:"len=12,dive,gte=0.5,lte=2.0"`

	// TrendRate is a monthly compounding fraction, e.g. 0.02 = +2%/month.
	TrendRate float64 `json:"trend_rate" validate:"gte=-0.2,lte=0.2"`

	Confidence string `json:"confidence" validate:"oneof=high medium low"`
	IsEnabled  bool   `json:"is_enabled"`
}

// Adjustment is the base shape shared by account and product scoped
// demand adjustments. Start and end are inclusive calendar days.
type Adjustment struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	IsRecurring bool             `json:"is_recurring"`
	Effect      AdjustmentEffect `json:"effect"`
	Multiplier  *float64         `json:"multiplier,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// AccountAdjustment applies to every product on the account unless a
// product opts out.
type AccountAdjustment struct {
	Adjustment
}

// ProductAdjustment is scoped to one product. When AccountAdjustmentID is
// set the record either overrides that account adjustment's multiplier or
// opts the product out of it entirely; when empty it is a standalone
// product adjustment.
type ProductAdjustment struct {
	Adjustment
	ProductID           string `json:"product_id"`
	AccountAdjustmentID string `json:"account_adjustment_id,omitempty"`
	IsOptedOut          bool   `json:"is_opted_out"`
}

// EffectiveAdjustment is the resolver's output: a flattened adjustment the
// calculators can apply without knowing about account/product origin.
type EffectiveAdjustment struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	IsRecurring bool             `json:"is_recurring"`
	Effect      AdjustmentEffect `json:"effect"`
	Multiplier  float64          `json:"multiplier"`
	Overridden  bool             `json:"overridden"`
	Source      string           `json:"source"` // "account" or "product"
}

// Inconsistency flags malformed adjustment data the resolver worked
// around. It is a diagnostic side channel, not an error: resolution keeps
// producing results for every product.
type Inconsistency struct {
	ProductID           string `json:"product_id"`
	AccountAdjustmentID string `json:"account_adjustment_id"`
	Detail              string `json:"detail"`
}

// ForecastRow is one materialized point of the projected series.
type ForecastRow struct {
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	SKU         string     `json:"sku"`
	Location    string     `json:"location"`
	Month       time.Month `json:"month"`
	Year        int        `json:"year"`
	Week        int        `json:"week"`
	Units       int        `json:"units"`
}

// ShippingRoute describes one transit leg between a warehouse and a
// destination location.
type ShippingRoute struct {
	ID                    string `json:"id"`
	Origin                string `json:"origin"`
	DestinationLocationID string `json:"destination_location_id"`
	Method                string `json:"method"`
	TransitDays           int    `json:"transit_days"`
	IsDefault             bool   `json:"is_default"`
}

// ReasoningItem is an explanatory statement produced upstream alongside a
// suggestion. The engine only ranks and filters these.
type ReasoningItem struct {
	Type    string   `json:"type"` // "warning", "calculation" or "info"
	Message string   `json:"message"`
	Value   *float64 `json:"value,omitempty"`
}

const (
	ReasonWarning     = "warning"
	ReasonCalculation = "calculation"
	ReasonInfo        = "info"
)

// ReplenishmentSuggestion is a draft inbound purchase order the timeline
// projector evaluates against shipping lead times.
type ReplenishmentSuggestion struct {
	ProductID             string          `json:"product_id"`
	SKU                   string          `json:"sku"`
	CurrentStock          int             `json:"current_stock"`
	DailySalesRate        float64         `json:"daily_sales_rate"`
	SafetyStockThreshold  int             `json:"safety_stock_threshold"`
	RecommendedQty        int             `json:"recommended_qty"`
	SupplierLeadTimeDays  int             `json:"supplier_lead_time_days"`
	RouteTransitDays      int             `json:"route_transit_days"`
	RouteMethod           string          `json:"route_method"`
	RouteName             string          `json:"route_name"`
	StockoutDate          *time.Time      `json:"stockout_date,omitempty"`
	EstimatedArrival      *time.Time      `json:"estimated_arrival,omitempty"`
	DestinationLocationID string          `json:"destination_location_id"`
	Reasoning             []ReasoningItem `json:"reasoning"`
}

// TransferSuggestion is the intra-network variant: one transit leg, no
// production lead and no route lookup.
type TransferSuggestion struct {
	ProductID            string          `json:"product_id"`
	SKU                  string          `json:"sku"`
	CurrentStock         int             `json:"current_stock"`
	DailySalesRate       float64         `json:"daily_sales_rate"`
	SafetyStockThreshold int             `json:"safety_stock_threshold"`
	RecommendedQty       int             `json:"recommended_qty"`
	TransitDays          int             `json:"transit_days"`
	StockoutDate         *time.Time      `json:"stockout_date,omitempty"`
	FromLocationID       string          `json:"from_location_id"`
	ToLocationID         string          `json:"to_location_id"`
	Reasoning            []ReasoningItem `json:"reasoning"`
}

// StockoutGapMetric is the projector's output: arrival vs stockout and the
// projected stock position once the replenishment lands.
type StockoutGapMetric struct {
	StockoutDate            *time.Time `json:"stockout_date,omitempty"`
	ArrivalDate             time.Time  `json:"arrival_date"`
	GapDays                 int        `json:"gap_days"`
	WillStockOut            bool       `json:"will_stock_out"`
	TotalLeadTimeDays       int        `json:"total_lead_time_days"`
	ProjectedStockOnArrival int        `json:"projected_stock_on_arrival"`
	CoverageAfterArrival    int        `json:"coverage_after_arrival"`
}
