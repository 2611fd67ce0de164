package controllers

import (
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"scad/internal/providers"
	"scad/internal/services"
)

const maxLeaderboardLimit = 100

// QueryController is the read-path surface. Responses are cached; absent
// data gets an explicit friendly notice instead of confusing zeros, and
// store failures surface as a generic error with detail kept in the logs.
type QueryController struct {
	logger  providers.Logger
	service services.QueryServiceInterface
	cache   providers.CacheProviderInterface
}

func NewQueryController(logger providers.Logger, service services.QueryServiceInterface, cache providers.CacheProviderInterface) *QueryController {
	return &QueryController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeNoData(w http.ResponseWriter, message string) {
	gson, _ := json.Marshal(map[string]string{"message": message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(gson)
}

// serveFromCacheOrCompute renders the computed result, caching only
// populated ones. hasData=false becomes the no-data notice; errors become a
// generic 500 so store detail never leaks to the requester.
func (qc *QueryController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey, noDataMsg string, compute func() (any, bool, error)) {
	if data, ok := qc.cache.Get(cacheKey); ok {
		writeJSON(w, data)
		return
	}

	result, hasData, err := compute()
	if err != nil {
		qc.logger.Errorf(providers.TypeGet, "Query %s failed: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !hasData {
		writeNoData(w, noDataMsg)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qc.cache.Set(cacheKey, gson)
	writeJSON(w, gson)
}

func (qc *QueryController) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := services.DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxLeaderboardLimit)
	}

	qc.serveFromCacheOrCompute(w, "leaderboard:"+strconv.Itoa(limit), "No data available yet", func() (any, bool, error) {
		entries, err := qc.service.GetLeaderboard(r.Context(), limit)
		return entries, len(entries) > 0, err
	})
}

func (qc *QueryController) GetStats(w http.ResponseWriter, r *http.Request) {
	qc.serveFromCacheOrCompute(w, "stats", "", func() (any, bool, error) {
		stats, err := qc.service.GetServerStats(r.Context())
		// An absent stats record renders as the zero-valued shape.
		return stats, true, err
	})
}

func (qc *QueryController) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("id")
	if userID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	qc.serveFromCacheOrCompute(w, "user:"+userID, "No data found for this user yet", func() (any, bool, error) {
		rec, err := qc.service.GetUserStats(r.Context(), userID)
		return rec, rec != nil, err
	})
}

func (qc *QueryController) GetTopArt(w http.ResponseWriter, r *http.Request) {
	qc.serveFromCacheOrCompute(w, "topart", "No art submissions tracked yet", func() (any, bool, error) {
		entries, err := qc.service.GetTopArt(r.Context())
		return entries, len(entries) > 0, err
	})
}

func (qc *QueryController) GetRoles(w http.ResponseWriter, r *http.Request) {
	qc.serveFromCacheOrCompute(w, "roles", "", func() (any, bool, error) {
		// Always one entry per configured role, so always data.
		dist, err := qc.service.GetRoleDistribution(r.Context())
		return dist, true, err
	})
}
