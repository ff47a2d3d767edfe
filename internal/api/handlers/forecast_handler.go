package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/export"
	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/service"
)

type ForecastHandler struct {
	service  *service.ForecastService
	archiver *export.Archiver
}

func NewForecastHandler(service *service.ForecastService, archiver *export.Archiver) *ForecastHandler {
	return &ForecastHandler{service: service, archiver: archiver}
}

func (h *ForecastHandler) parseFilter(c *gin.Context) (domain.SeriesFilter, error) {
	filter := domain.SeriesFilter{
		HorizonMonths: forecast.DefaultHorizonMonths,
		GroupBy:       string(forecast.GroupByProduct),
	}

	if horizon, err := strconv.Atoi(c.DefaultQuery("horizon", "12")); err == nil && horizon > 0 {
		filter.HorizonMonths = horizon
	}

	if groupBy := strings.ToLower(strings.TrimSpace(c.Query("group_by"))); groupBy != "" {
		switch forecast.GroupBy(groupBy) {
		case forecast.GroupByProduct, forecast.GroupByMonth, forecast.GroupByWeek:
			filter.GroupBy = groupBy
		default:
			return filter, fmt.Errorf("unknown group_by %q", groupBy)
		}
	}

	if ids := strings.TrimSpace(c.Query("product_ids")); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.ProductIDs = append(filter.ProductIDs, id)
			}
		}
	}

	filter.LocationID = strings.TrimSpace(c.Query("location_id"))

	return filter, nil
}

func (h *ForecastHandler) GetSeries(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.service.GetSeries(c.Request.Context(), filter, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast series", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}

// ExportSeries streams the same row set as a CSV download; with
// ?archive=true the snapshot is also written to object storage.
func (h *ForecastHandler) ExportSeries(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	rows, err := h.service.GetSeries(c.Request.Context(), filter, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast series", "details": err.Error()})
		return
	}

	if c.Query("archive") == "true" && h.archiver != nil {
		label := filter.LocationID
		if label == "" {
			label = "all"
		}
		if _, err := h.archiver.Archive(c.Request.Context(), rows, label, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive forecast snapshot", "details": err.Error()})
			return
		}
	}

	filename := fmt.Sprintf("forecast_%s.csv", now.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(c.Writer, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write csv", "details": err.Error()})
	}
}
