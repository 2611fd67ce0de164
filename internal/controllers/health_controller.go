package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"scad/internal/providers"
	"scad/internal/store"
)

type HealthController struct {
	store     store.KeyedStore
	counters  *providers.EventCounters
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Store         string  `json:"store"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	MessagesSeen  int64   `json:"messages_seen"`
	RoleChanges   int64   `json:"role_changes_seen"`
	JoinsSeen     int64   `json:"joins_seen"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	storeStatus := "ok"
	if err := hc.store.Ping(r.Context()); err != nil {
		storeStatus = "unreachable"
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Store:         storeStatus,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		MessagesSeen:  hc.counters.Messages.Load(),
		RoleChanges:   hc.counters.Roles.Load(),
		JoinsSeen:     hc.counters.Joins.Load(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(st store.KeyedStore, counters *providers.EventCounters) *HealthController {
	return &HealthController{
		store:     st,
		counters:  counters,
		startTime: time.Now(),
	}
}
