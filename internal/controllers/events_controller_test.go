package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"scad/internal/classify"
	"scad/internal/models"
	"scad/internal/structures"
	"scad/internal/testutil"
)

type recordedMessage struct {
	UserID      string
	Username    string
	DisplayName string
	ChannelID   string
	ChannelName string
	IsArt       bool
}

type recordedRole struct {
	UserID   string
	RoleName string
}

type recordedJoin struct {
	Member  models.Member
	MagRole string
}

type mockTracker struct {
	Messages []recordedMessage
	Roles    []recordedRole
	Joins    []recordedJoin
}

func (m *mockTracker) RecordMessage(_ context.Context, userID, username, displayName, channelID, channelName string, isArt bool) {
	m.Messages = append(m.Messages, recordedMessage{userID, username, displayName, channelID, channelName, isArt})
}

func (m *mockTracker) RecordRole(_ context.Context, userID, _, roleName string) {
	m.Roles = append(m.Roles, recordedRole{userID, roleName})
}

func (m *mockTracker) RecordJoin(_ context.Context, member *models.Member, magRole string) {
	m.Joins = append(m.Joins, recordedJoin{Member: *member, MagRole: magRole})
}

type mockRoster struct {
	Received []models.Member
	Synced   int
}

func (m *mockRoster) SyncMemberRoles(_ context.Context, members []models.Member) int {
	m.Received = members
	return m.Synced
}

func testClassifier() *classify.Classifier {
	return classify.NewClassifier(&structures.Config{
		Tracking: structures.TrackingConfig{
			MagRoles:    []string{"Mag 5", "Mag 4", "Mag 3", "Mag 2", "Mag 1"},
			ArtChannels: []string{"art", "gallery"},
		},
	})
}

func newEventsController() (*EventsController, *mockTracker, *mockRoster) {
	tracker := &mockTracker{}
	roster := &mockRoster{}
	return NewEventsController(&testutil.MockLogger{}, tracker, roster, testClassifier()), tracker, roster
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestReceiveMessage_Tracked(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveMessage, `{"userId":"42","username":"quake","displayName":"Quake","channelId":"9","channelName":"general","attachments":0}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, tracker.Messages, 1)
	assert.Equal(t, "42", tracker.Messages[0].UserID)
	assert.Equal(t, "9", tracker.Messages[0].ChannelID)
	assert.False(t, tracker.Messages[0].IsArt)
}

func TestReceiveMessage_ArtClassified(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveMessage, `{"userId":"42","username":"quake","channelId":"7","channelName":"art-gallery","attachments":2}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, tracker.Messages, 1)
	assert.True(t, tracker.Messages[0].IsArt)
}

func TestReceiveMessage_DisplayNameDefaultsToUsername(t *testing.T) {
	ec, tracker, _ := newEventsController()

	postJSON(ec.ReceiveMessage, `{"userId":"42","username":"quake","channelId":"9","channelName":"general"}`)

	require.Len(t, tracker.Messages, 1)
	assert.Equal(t, "quake", tracker.Messages[0].DisplayName)
}

func TestReceiveMessage_BadJSON(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveMessage, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, tracker.Messages)
}

func TestReceiveMessage_MissingIdentifiers(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveMessage, `{"username":"quake","channelName":"general"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, tracker.Messages)
}

func TestReceiveMessage_OversizedBody(t *testing.T) {
	ec, tracker, _ := newEventsController()

	body := `{"userId":"42","channelId":"9","username":"` + strings.Repeat("x", maxRequestBodySize+1) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	ec.ReceiveMessage(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, tracker.Messages)
}

func TestReceiveRoleChange_RecordedWhenChanged(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveRoleChange, `{"userId":"42","username":"quake","oldRoleNames":["Mag 2"],"newRoleNames":["Mag 4"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, tracker.Roles, 1)
	assert.Equal(t, "Mag 4", tracker.Roles[0].RoleName)
}

func TestReceiveRoleChange_SkippedWhenUnchanged(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveRoleChange, `{"userId":"42","oldRoleNames":["Mag 2","Helper"],"newRoleNames":["Mag 2"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, tracker.Roles)
}

func TestReceiveRoleChange_SkippedWhenRoleRemoved(t *testing.T) {
	ec, tracker, _ := newEventsController()

	postJSON(ec.ReceiveRoleChange, `{"userId":"42","oldRoleNames":["Mag 2"],"newRoleNames":["Member"]}`)

	assert.Empty(t, tracker.Roles)
}

func TestReceiveJoin_ResolvesRole(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveJoin, `{"userId":"42","username":"quake","roleNames":["Mag 3 veteran"]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, tracker.Joins, 1)
	assert.Equal(t, "42", tracker.Joins[0].Member.UserID)
	assert.Equal(t, "Mag 3", tracker.Joins[0].MagRole)
}

func TestReceiveJoin_MissingUserID(t *testing.T) {
	ec, tracker, _ := newEventsController()

	w := postJSON(ec.ReceiveJoin, `{"username":"quake"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, tracker.Joins)
}

func TestSyncRoster_ReturnsSyncedCount(t *testing.T) {
	ec, _, roster := newEventsController()
	roster.Synced = 3

	w := postJSON(ec.SyncRoster, `{"members":[{"userId":"1"},{"userId":"2"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"synced":3}`, w.Body.String())
	assert.Len(t, roster.Received, 2)
}
