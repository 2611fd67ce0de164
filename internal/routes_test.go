package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"scad/internal/classify"
	"scad/internal/controllers"
	"scad/internal/models"
	"scad/internal/providers"
	"scad/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}

type routeTestTracker struct{}

func (m *routeTestTracker) RecordMessage(_ context.Context, _, _, _, _, _ string, _ bool) {}
func (m *routeTestTracker) RecordRole(_ context.Context, _, _, _ string)                  {}
func (m *routeTestTracker) RecordJoin(_ context.Context, _ *models.Member, _ string)      {}

type routeTestRoster struct{}

func (m *routeTestRoster) SyncMemberRoles(_ context.Context, _ []models.Member) int { return 0 }

type routeTestQuery struct{}

func (m *routeTestQuery) GetLeaderboard(_ context.Context, _ int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}
func (m *routeTestQuery) GetServerStats(_ context.Context) (*models.GlobalStats, error) {
	return &models.GlobalStats{}, nil
}
func (m *routeTestQuery) GetUserStats(_ context.Context, _ string) (*models.UserRecord, error) {
	return nil, nil
}
func (m *routeTestQuery) GetTopArt(_ context.Context) ([]models.LeaderboardEntry, error) {
	return nil, nil
}
func (m *routeTestQuery) GetRoleDistribution(_ context.Context) ([]models.RoleCount, error) {
	return nil, nil
}

func routeTestControllers() (*controllers.EventsController, *controllers.QueryController) {
	classifier := classify.NewClassifier(&structures.Config{
		Tracking: structures.TrackingConfig{
			MagRoles:    []string{"Mag 1"},
			ArtChannels: []string{"art"},
		},
	})
	events := controllers.NewEventsController(&routeTestLogger{}, &routeTestTracker{}, &routeTestRoster{}, classifier)
	query := controllers.NewQueryController(&routeTestLogger{}, &routeTestQuery{}, &routeTestCache{})
	return events, query
}

func TestInitRoutes_RegistersNineRoutes(t *testing.T) {
	events, query := routeTestControllers()

	router := InitRoutes(events, query, &structures.Config{})
	routes := router.GetRoutes()

	require.Len(t, routes, 9)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/events/message")
	assert.Contains(t, urls, "/events/role")
	assert.Contains(t, urls, "/events/join")
	assert.Contains(t, urls, "/sync/roster")
	assert.Contains(t, urls, "/leaderboard")
	assert.Contains(t, urls, "/stats")
	assert.Contains(t, urls, "/user")
	assert.Contains(t, urls, "/topart")
	assert.Contains(t, urls, "/roles")
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	events, query := routeTestControllers()

	router := InitRoutes(events, query, &structures.Config{})
	routes := router.GetRoutes()

	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.Url, r.Handler)
	}

	// POST-only ingest route must reject GET
	req := httptest.NewRequest(http.MethodGet, "/events/message", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// GET-only query route must reject POST
	req = httptest.NewRequest(http.MethodPost, "/leaderboard", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
