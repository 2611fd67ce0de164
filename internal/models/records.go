package models

import "github.com/spf13/cast"

// UserRecord is the per-user analytics record as stored under
// <root>/users/<userId>.
type UserRecord struct {
	UserID         string           `json:"userId"`
	Username       string           `json:"username"`
	DisplayName    string           `json:"displayName"`
	LastActive     int64            `json:"lastActive"`
	TotalMessages  int64            `json:"totalMessages"`
	ArtSubmissions int64            `json:"artSubmissions"`
	MagRole        string           `json:"magRole"`
	RoleUpdated    int64            `json:"roleUpdated"`
	JoinedAt       int64            `json:"joinedAt"`
	Channels       map[string]int64 `json:"channels,omitempty"`
	Daily          map[string]int64 `json:"daily,omitempty"`
}

// GlobalStats is the singleton record under <root>/stats.
type GlobalStats struct {
	TotalMessages int64            `json:"totalMessages"`
	TotalArt      int64            `json:"totalArt"`
	TotalMembers  int64            `json:"totalMembers"`
	Daily         map[string]int64 `json:"daily,omitempty"`
	Roles         map[string]int64 `json:"roles,omitempty"`
}

// LeaderboardEntry is the read-side projection of a user for ranked views.
type LeaderboardEntry struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	TotalMessages  int64  `json:"totalMessages"`
	ArtSubmissions int64  `json:"artSubmissions"`
	MagRole        string `json:"magRole"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// Member is a roster entry as delivered by the platform gateway.
type Member struct {
	UserID      string   `json:"userId"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	JoinedAt    int64    `json:"joinedAt"`
	RoleNames   []string `json:"roleNames"`
	Bot         bool     `json:"bot"`
}

// UserRecordFromTree decodes a folded store subtree into a UserRecord.
// Absent numeric fields default to 0 and an absent role to RoleNone, so
// records written by older tool versions stay readable.
func UserRecordFromTree(userID string, tree map[string]any) *UserRecord {
	rec := &UserRecord{
		UserID:         userID,
		Username:       cast.ToString(tree[FieldUsername]),
		DisplayName:    cast.ToString(tree[FieldDisplayName]),
		LastActive:     cast.ToInt64(tree[FieldLastActive]),
		TotalMessages:  cast.ToInt64(tree[FieldTotalMessages]),
		ArtSubmissions: cast.ToInt64(tree[FieldArtSubmissions]),
		MagRole:        cast.ToString(tree[FieldMagRole]),
		RoleUpdated:    cast.ToInt64(tree[FieldRoleUpdated]),
		JoinedAt:       cast.ToInt64(tree[FieldJoinedAt]),
		Channels:       CounterMap(tree["channels"]),
		Daily:          CounterMap(tree["daily"]),
	}
	if rec.Username == "" {
		rec.Username = "Unknown"
	}
	if rec.DisplayName == "" {
		rec.DisplayName = rec.Username
	}
	if rec.MagRole == "" {
		rec.MagRole = RoleNone
	}
	return rec
}

// GlobalStatsFromTree decodes the stats subtree, returning a zero-valued
// record for a nil tree.
func GlobalStatsFromTree(tree map[string]any) *GlobalStats {
	stats := &GlobalStats{
		Daily: make(map[string]int64),
		Roles: make(map[string]int64),
	}
	if tree == nil {
		return stats
	}
	stats.TotalMessages = cast.ToInt64(tree[FieldTotalMessages])
	stats.TotalArt = cast.ToInt64(tree[FieldTotalArt])
	stats.TotalMembers = cast.ToInt64(tree[FieldTotalMembers])
	stats.Daily = CounterMap(tree["daily"])
	stats.Roles = CounterMap(tree["roles"])
	return stats
}

func (u *UserRecord) LeaderboardEntry() LeaderboardEntry {
	return LeaderboardEntry{
		UserID:         u.UserID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		TotalMessages:  u.TotalMessages,
		ArtSubmissions: u.ArtSubmissions,
		MagRole:        u.MagRole,
	}
}

// CounterMap decodes a folded branch of numeric leaves (per-channel,
// per-day and per-role counters) into a string-keyed counter map.
func CounterMap(v any) map[string]int64 {
	out := make(map[string]int64)
	tree, ok := v.(map[string]any)
	if !ok {
		return out
	}
	for key, val := range tree {
		out[key] = cast.ToInt64(val)
	}
	return out
}
