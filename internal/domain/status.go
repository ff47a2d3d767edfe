package domain

import (
	"strings"

	"github.com/opsconsole/backend/internal/forecast"
)

var timelineStatusLabels = map[forecast.TimelineStatus]string{
	forecast.StatusCritical: "Critical",
	forecast.StatusWarning:  "Warning",
	forecast.StatusHealthy:  "Healthy",
}

var timelineStatusCodes = map[string]forecast.TimelineStatus{
	"critical": forecast.StatusCritical,
	"warning":  forecast.StatusWarning,
	"healthy":  forecast.StatusHealthy,
}

// TimelineStatusLabel returns a human-readable label for a timeline status.
func TimelineStatusLabel(status forecast.TimelineStatus) string {
	if label, ok := timelineStatusLabels[status]; ok {
		return label
	}

	return "Unknown"
}

// ParseTimelineStatus returns the status for a given label (case-insensitive).
func ParseTimelineStatus(label string) (forecast.TimelineStatus, bool) {
	status, ok := timelineStatusCodes[strings.ToLower(label)]

	return status, ok
}
