package models

import (
	"strings"
	"time"
)

// RoleNone is the sentinel stored when a member holds no magnitude role.
const RoleNone = "None"

// Field names under user, channel and stats records. These are part of the
// wire contract other tools read; do not rename.
const (
	FieldUsername       = "username"
	FieldDisplayName    = "displayName"
	FieldLastActive     = "lastActive"
	FieldTotalMessages  = "totalMessages"
	FieldArtSubmissions = "artSubmissions"
	FieldMagRole        = "magRole"
	FieldRoleUpdated    = "roleUpdated"
	FieldJoinedAt       = "joinedAt"
	FieldName           = "name"
	FieldTotalArt       = "totalArt"
	FieldTotalMembers   = "totalMembers"
)

func UsersPath(root string) string {
	return root + "/users"
}

func UserPath(root, userID string) string {
	return root + "/users/" + userID
}

func UserChannelPath(root, userID, channelID string) string {
	return UserPath(root, userID) + "/channels/" + channelID
}

func UserDailyPath(root, userID, day string) string {
	return UserPath(root, userID) + "/daily/" + day
}

func ChannelPath(root, channelID string) string {
	return root + "/channels/" + channelID
}

func StatsPath(root string) string {
	return root + "/stats"
}

func StatsDailyPath(root, day string) string {
	return StatsPath(root) + "/daily/" + day
}

func RoleCounterPath(root, roleName string) string {
	return StatsPath(root) + "/roles/" + RoleSlug(roleName)
}

// RoleSlug renders a role name as a path-safe key segment. Only the first
// space is replaced; keys written this way already exist in production
// stores, so the behavior is pinned for compatibility.
func RoleSlug(roleName string) string {
	return strings.Replace(roleName, " ", "_", 1)
}

// Today returns the current UTC day as an ISO date, the key format of the
// daily counter maps.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}
