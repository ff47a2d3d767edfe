package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/service"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

// Dates cross the API as calendar-day strings and are parsed fail-fast:
// an unparseable stockout date is a 400, never silently dropped.
type timelineRequest struct {
	ProductID             string                   `json:"product_id"`
	SKU                   string                   `json:"sku"`
	CurrentStock          int                      `json:"current_stock"`
	DailySalesRate        float64                  `json:"daily_sales_rate"`
	SafetyStockThreshold  int                      `json:"safety_stock_threshold"`
	RecommendedQty        int                      `json:"recommended_qty"`
	SupplierLeadTimeDays  int                      `json:"supplier_lead_time_days"`
	RouteTransitDays      int                      `json:"route_transit_days"`
	RouteMethod           string                   `json:"route_method"`
	RouteName             string                   `json:"route_name"`
	StockoutDate          string                   `json:"stockout_date"`
	DestinationLocationID string                   `json:"destination_location_id"`
	Reasoning             []forecast.ReasoningItem `json:"reasoning"`
}

type transferTimelineRequest struct {
	ProductID            string                   `json:"product_id"`
	SKU                  string                   `json:"sku"`
	CurrentStock         int                      `json:"current_stock"`
	DailySalesRate       float64                  `json:"daily_sales_rate"`
	SafetyStockThreshold int                      `json:"safety_stock_threshold"`
	RecommendedQty       int                      `json:"recommended_qty"`
	TransitDays          int                      `json:"transit_days"`
	StockoutDate         string                   `json:"stockout_date"`
	FromLocationID       string                   `json:"from_location_id"`
	ToLocationID         string                   `json:"to_location_id"`
	Reasoning            []forecast.ReasoningItem `json:"reasoning"`
}

func parseOptionalDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := forecast.ParseDay(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *ReplenishmentHandler) ProjectTimeline(c *gin.Context) {
	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	stockoutDate, err := parseOptionalDay(req.StockoutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion := forecast.ReplenishmentSuggestion{
		ProductID:             req.ProductID,
		SKU:                   req.SKU,
		CurrentStock:          req.CurrentStock,
		DailySalesRate:        req.DailySalesRate,
		SafetyStockThreshold:  req.SafetyStockThreshold,
		RecommendedQty:        req.RecommendedQty,
		SupplierLeadTimeDays:  req.SupplierLeadTimeDays,
		RouteTransitDays:      req.RouteTransitDays,
		RouteMethod:           req.RouteMethod,
		RouteName:             req.RouteName,
		StockoutDate:          stockoutDate,
		DestinationLocationID: req.DestinationLocationID,
		Reasoning:             req.Reasoning,
	}

	result, err := h.service.ProjectTimeline(c.Request.Context(), suggestion, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to project timeline", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReplenishmentHandler) ProjectTransferTimeline(c *gin.Context) {
	var req transferTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	stockoutDate, err := parseOptionalDay(req.StockoutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer := forecast.TransferSuggestion{
		ProductID:            req.ProductID,
		SKU:                  req.SKU,
		CurrentStock:         req.CurrentStock,
		DailySalesRate:       req.DailySalesRate,
		SafetyStockThreshold: req.SafetyStockThreshold,
		RecommendedQty:       req.RecommendedQty,
		TransitDays:          req.TransitDays,
		StockoutDate:         stockoutDate,
		FromLocationID:       req.FromLocationID,
		ToLocationID:         req.ToLocationID,
		Reasoning:            req.Reasoning,
	}

	result := h.service.ProjectTransferTimeline(c.Request.Context(), transfer, time.Now().UTC())

	c.JSON(http.StatusOK, result)
}
