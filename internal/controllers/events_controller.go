package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"scad/internal/classify"
	"scad/internal/models"
	"scad/internal/providers"
	"scad/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// EventsController is the write-path ingest surface. The platform gateway
// pushes validated events here; identity and role membership are never
// reconstructed on this side. Store faults never fail the gateway request.
type EventsController struct {
	logger     providers.Logger
	tracker    services.TrackerServiceInterface
	roster     services.RosterServiceInterface
	classifier *classify.Classifier
}

func NewEventsController(logger providers.Logger, tracker services.TrackerServiceInterface, roster services.RosterServiceInterface, classifier *classify.Classifier) *EventsController {
	return &EventsController{
		logger:     logger,
		tracker:    tracker,
		roster:     roster,
		classifier: classifier,
	}
}

type messageEvent struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName"`
	Attachments int    `json:"attachments"`
}

type roleEvent struct {
	UserID       string   `json:"userId"`
	Username     string   `json:"username"`
	OldRoleNames []string `json:"oldRoleNames"`
	NewRoleNames []string `json:"newRoleNames"`
}

type rosterPayload struct {
	Members []models.Member `json:"members"`
}

func decodeEvent(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (ec *EventsController) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	var ev messageEvent
	if !decodeEvent(w, r, &ev) {
		return
	}
	if ev.UserID == "" || ev.ChannelID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if ev.DisplayName == "" {
		ev.DisplayName = ev.Username
	}

	isArt := ec.classifier.IsArtSubmission(ev.ChannelName, ev.Attachments)
	ec.tracker.RecordMessage(r.Context(), ev.UserID, ev.Username, ev.DisplayName, ev.ChannelID, ev.ChannelName, isArt)
	w.WriteHeader(http.StatusCreated)
}

// ReceiveRoleChange records a role update only when the resolved magnitude
// role actually changed and the new resolution is a tracked role. The old
// role's histogram counter is not decremented; divergence there is accepted.
func (ec *EventsController) ReceiveRoleChange(w http.ResponseWriter, r *http.Request) {
	var ev roleEvent
	if !decodeEvent(w, r, &ev) {
		return
	}
	if ev.UserID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	oldRole := ec.classifier.ResolveRole(ev.OldRoleNames)
	newRole := ec.classifier.ResolveRole(ev.NewRoleNames)
	if newRole != oldRole && newRole != models.RoleNone {
		ec.tracker.RecordRole(r.Context(), ev.UserID, ev.Username, newRole)
		ec.logger.Infof(providers.TypePost, "%s role changed: %s -> %s", ev.Username, oldRole, newRole)
	}
	w.WriteHeader(http.StatusCreated)
}

func (ec *EventsController) ReceiveJoin(w http.ResponseWriter, r *http.Request) {
	var member models.Member
	if !decodeEvent(w, r, &member) {
		return
	}
	if member.UserID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if member.DisplayName == "" {
		member.DisplayName = member.Username
	}

	role := ec.classifier.ResolveRole(member.RoleNames)
	ec.tracker.RecordJoin(r.Context(), &member, role)
	w.WriteHeader(http.StatusCreated)
}

// SyncRoster runs the role reconciliation pass against an inline roster,
// for operators who want to trigger it without restarting the process.
func (ec *EventsController) SyncRoster(w http.ResponseWriter, r *http.Request) {
	var payload rosterPayload
	if !decodeEvent(w, r, &payload) {
		return
	}

	synced := ec.roster.SyncMemberRoles(r.Context(), payload.Members)

	gson, err := json.Marshal(map[string]int{"synced": synced})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}
