package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sumitkarde03/druglaunchindia/aggregator"
	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/pharmastore/entities"
)

// dataSourceHeader tells the UI which branch produced a read result so it
// can render the live/demo trust badge.
const dataSourceHeader = "X-Data-Source"

// HTTPHandlerImpl bundles the injected dependencies for all endpoints.
type HTTPHandlerImpl struct {
	provider      interfaces.DrugDataProvider
	healthData    interfaces.HealthDataProvider
	validator     interfaces.InputValidator
	dataStore     interfaces.DataStore
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates an HTTP handler with injected dependencies.
func NewHTTPHandler(
	provider interfaces.DrugDataProvider,
	healthData interfaces.HealthDataProvider,
	validator interfaces.InputValidator,
	dataStore interfaces.DataStore,
	healthChecker interfaces.HealthChecker,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		provider:      provider,
		healthData:    healthData,
		validator:     validator,
		dataStore:     dataStore,
		healthChecker: healthChecker,
	}
}

func setSource(w http.ResponseWriter, source interfaces.Source) {
	w.Header().Set(dataSourceHeader, string(source))
}

// ServeDrugs handles GET /v1/drugs.
func (h *HTTPHandlerImpl) ServeDrugs(w http.ResponseWriter, r *http.Request) {
	drugs, source := h.provider.GetDrugPrices(r.Context())
	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": drugs})
}

// SearchDrugs handles GET /v1/drugs/search?q=term&category=cat.
func (h *HTTPHandlerImpl) SearchDrugs(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	if err := h.validator.ValidateSearchTerm(term); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateCategory(category); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	drugs, source := h.provider.SearchDrugs(r.Context(), term, category)
	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": drugs})
}

// ServeDrugDetails handles GET /v1/drugs/{drugID}.
func (h *HTTPHandlerImpl) ServeDrugDetails(w http.ResponseWriter, r *http.Request) {
	drugID, err := h.validator.ValidateDrugID(chi.URLParam(r, "drugID"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, source, err := h.provider.GetDrugDetails(r.Context(), drugID)
	if err != nil {
		RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": details})
}

// ServeCategories handles GET /v1/categories.
func (h *HTTPHandlerImpl) ServeCategories(w http.ResponseWriter, r *http.Request) {
	categories, source := h.provider.GetDrugCategories(r.Context())
	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": categories})
}

// ServeMarketStats handles GET /v1/market-stats.
func (h *HTTPHandlerImpl) ServeMarketStats(w http.ResponseWriter, r *http.Request) {
	stats, source := h.provider.GetMarketStats(r.Context())
	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, stats)
}

// ServeRegulatory handles GET /v1/regulatory.
func (h *HTTPHandlerImpl) ServeRegulatory(w http.ResponseWriter, r *http.Request) {
	updates, source := h.provider.GetRegulatoryInfo(r.Context())
	setSource(w, source)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": updates})
}

// ServeProfiles handles GET /v1/profiles. Requires a session.
func (h *HTTPHandlerImpl) ServeProfiles(w http.ResponseWriter, r *http.Request) {
	if UserIDFromContext(r.Context()) == "" {
		RespondWithError(w, http.StatusUnauthorized, aggregator.ErrUnauthenticated.Error())
		return
	}

	profiles, err := h.provider.GetUserProfiles(r.Context())
	if err != nil {
		if errors.Is(err, aggregator.ErrNotConfigured) {
			RespondWithError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "failed to fetch profiles")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{"data": profiles})
}

// UpdateProfile handles PATCH /v1/profile. This is the one endpoint where a
// store failure reaches the caller: a write has no fallback.
func (h *HTTPHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		RespondWithError(w, http.StatusUnauthorized, aggregator.ErrUnauthenticated.Error())
		return
	}

	var upd entities.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.provider.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, aggregator.ErrUnauthenticated):
			RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, aggregator.ErrNotConfigured):
			RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		default:
			RespondWithError(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{"data": profile})
}

// ServeHealthData handles GET /v1/health-data/{country}.
func (h *HTTPHandlerImpl) ServeHealthData(w http.ResponseWriter, r *http.Request) {
	country, err := h.validator.ValidateCountryCode(chi.URLParam(r, "country"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.healthData.GetHealthData(r.Context(), country)
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": results})
}

// ServeGlobalHealth handles GET /v1/global-health.
func (h *HTTPHandlerImpl) ServeGlobalHealth(w http.ResponseWriter, r *http.Request) {
	results := h.healthData.GetGlobalHealthStats(r.Context())
	RespondWithJSON(w, http.StatusOK, map[string]any{"data": results})
}

// ServeStatus handles GET /v1/status: the trust badge endpoint.
func (h *HTTPHandlerImpl) ServeStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"store_configured": h.provider.IsStoreConfigured(),
		"data_source":      string(h.dataStore.GetSource()),
		"last_refreshed":   h.dataStore.GetLastRefreshed().Format(time.RFC3339),
		"drug_count":       len(h.dataStore.GetDrugs()),
	}
	RespondWithJSON(w, http.StatusOK, status)
}

// HealthCheck handles GET /health.
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.healthChecker.HealthCheck()
	RespondWithJSON(w, httpStatus, map[string]any{
		"status": status,
		"data":   data,
	})
}
