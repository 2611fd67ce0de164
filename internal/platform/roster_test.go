package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"scad/internal/structures"
)

func rosterConfig(url string) *structures.Config {
	return &structures.Config{
		Platform: structures.PlatformConfig{
			RosterURL: url,
			Timeout:   2 * time.Second,
		},
	}
}

func TestRosterClient_Configured(t *testing.T) {
	assert.True(t, NewRosterClient(rosterConfig("http://gateway/members")).Configured())
	assert.False(t, NewRosterClient(rosterConfig("")).Configured())
}

func TestRosterClient_FetchMembers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"members":[
			{"userId":"1","username":"quake","roleNames":["Mag 3"]},
			{"userId":"2","username":"helperbot","bot":true}
		]}`))
	}))
	defer srv.Close()

	rc := NewRosterClient(rosterConfig(srv.URL))
	members, err := rc.FetchMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "quake", members[0].Username)
	assert.Equal(t, []string{"Mag 3"}, members[0].RoleNames)
	assert.True(t, members[1].Bot)
}

func TestRosterClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rc := NewRosterClient(rosterConfig(srv.URL))
	_, err := rc.FetchMembers(context.Background())
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestRosterClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"members": "nope"`))
	}))
	defer srv.Close()

	rc := NewRosterClient(rosterConfig(srv.URL))
	_, err := rc.FetchMembers(context.Background())
	assert.Error(t, err)
}

func TestRosterClient_UnreachableEndpoint(t *testing.T) {
	rc := NewRosterClient(rosterConfig("http://127.0.0.1:1/members"))
	_, err := rc.FetchMembers(context.Background())
	assert.Error(t, err)
}
