// Package health reports system health for the /health endpoint.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker contract.
type HealthCheckerImpl struct {
	dataStore       interfaces.DataStore
	storeConfigured bool
}

// NewHealthChecker creates a health checker with injected dependencies.
func NewHealthChecker(dataStore interfaces.DataStore, storeConfigured bool) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore:       dataStore,
		storeConfigured: storeConfigured,
	}
}

// HealthCheck determines the current status from snapshot age and content.
// A service running on demo data is degraded, never unhealthy: serving demo
// data is exactly what the fallback policy promises.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	drugs := h.dataStore.GetDrugs()
	lastRefreshed := h.dataStore.GetLastRefreshed()
	refreshing := h.dataStore.IsRefreshing()
	source := h.dataStore.GetSource()

	snapshotAge := time.Since(lastRefreshed)

	switch {
	case len(drugs) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.storeConfigured && snapshotAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.storeConfigured && !source.Live():
		status = "degraded"
		httpStatus = http.StatusOK

	case !h.storeConfigured:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"store_configured":   h.storeConfigured,
		"data_source":        string(source),
		"last_refreshed":     lastRefreshed.Format(time.RFC3339),
		"snapshot_age_hours": math.Round(snapshotAge.Hours()*10) / 10,
		"drugs":              len(drugs),
		"is_refreshing":      refreshing,
		"uptime_seconds":     math.Round(time.Since(h.dataStore.GetServerStartTime()).Seconds()),
	}

	return status, data, httpStatus
}
