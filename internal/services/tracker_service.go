package services

import (
	"context"
	"scad/internal/models"
	"scad/internal/providers"
	"scad/internal/store"
	"scad/internal/structures"
	"time"
)

type TrackerServiceInterface interface {
	RecordMessage(ctx context.Context, userID, username, displayName, channelID, channelName string, isArt bool)
	RecordRole(ctx context.Context, userID, username, roleName string)
	RecordJoin(ctx context.Context, member *models.Member, magRole string)
}

// TrackerService is the write path: it turns classified platform events into
// counter increments and field upserts against the keyed store. Every
// sub-write is independent; a failed one is logged and left stale rather than
// aborting sibling writes, so the operations never return an error to the
// event source.
type TrackerService struct {
	store    store.KeyedStore
	logger   providers.Logger
	counters *providers.EventCounters
	root     string
}

func NewTrackerService(conf *structures.Config, st store.KeyedStore, logger providers.Logger, counters *providers.EventCounters) TrackerServiceInterface {
	return &TrackerService{
		store:    st,
		logger:   logger,
		counters: counters,
		root:     conf.Store.RootPath,
	}
}

func (ts *TrackerService) RecordMessage(ctx context.Context, userID, username, displayName, channelID, channelName string, isArt bool) {
	today := models.Today()

	ts.update(ctx, models.UserPath(ts.root, userID), map[string]any{
		models.FieldUsername:    username,
		models.FieldDisplayName: displayName,
		models.FieldLastActive:  time.Now().UnixMilli(),
	})
	ts.increment(ctx, models.UserPath(ts.root, userID)+"/"+models.FieldTotalMessages)
	ts.increment(ctx, models.UserChannelPath(ts.root, userID, channelID))
	ts.increment(ctx, models.UserDailyPath(ts.root, userID, today))

	ts.increment(ctx, models.ChannelPath(ts.root, channelID)+"/"+models.FieldTotalMessages)
	ts.update(ctx, models.ChannelPath(ts.root, channelID), map[string]any{
		models.FieldName: channelName,
	})

	if isArt {
		ts.increment(ctx, models.UserPath(ts.root, userID)+"/"+models.FieldArtSubmissions)
		ts.increment(ctx, models.StatsPath(ts.root)+"/"+models.FieldTotalArt)
	}

	ts.increment(ctx, models.StatsPath(ts.root)+"/"+models.FieldTotalMessages)
	ts.increment(ctx, models.StatsDailyPath(ts.root, today))

	ts.counters.Messages.Inc()
	ts.logger.Debugf(providers.TypeStore, "Tracked message from %s in #%s", username, channelName)
}

// RecordRole upserts the user's magnitude role label and bumps the global
// role-distribution counter. Callers invoke it only when the resolved role
// actually changed; the counter for the previous role is intentionally left
// as-is.
func (ts *TrackerService) RecordRole(ctx context.Context, userID, username, roleName string) {
	ts.update(ctx, models.UserPath(ts.root, userID), map[string]any{
		models.FieldUsername:    username,
		models.FieldMagRole:     roleName,
		models.FieldRoleUpdated: time.Now().UnixMilli(),
	})
	ts.increment(ctx, models.RoleCounterPath(ts.root, roleName))

	ts.counters.Roles.Inc()
	ts.logger.Infof(providers.TypeStore, "Updated role for %s: %s", username, roleName)
}

// RecordJoin writes a fresh user record and bumps the member total. A rejoin
// overwrites identity fields and re-increments totalMembers; the gateway
// does not distinguish rejoins, so no dedup is attempted here.
func (ts *TrackerService) RecordJoin(ctx context.Context, member *models.Member, magRole string) {
	ts.update(ctx, models.UserPath(ts.root, member.UserID), map[string]any{
		models.FieldUsername:      member.Username,
		models.FieldDisplayName:   member.DisplayName,
		models.FieldJoinedAt:      member.JoinedAt,
		models.FieldMagRole:       magRole,
		models.FieldTotalMessages: 0,
	})
	ts.increment(ctx, models.StatsPath(ts.root)+"/"+models.FieldTotalMembers)

	ts.counters.Joins.Inc()
	ts.logger.Infof(providers.TypeStore, "New member joined: %s", member.Username)
}

func (ts *TrackerService) increment(ctx context.Context, path string) {
	if _, err := ts.store.Increment(ctx, path, 1); err != nil {
		ts.logger.Errorf(providers.TypeStore, "Increment %s failed: %s", path, err)
	}
}

func (ts *TrackerService) update(ctx context.Context, path string, fields map[string]any) {
	if err := ts.store.Update(ctx, path, fields); err != nil {
		ts.logger.Errorf(providers.TypeStore, "Update %s failed: %s", path, err)
	}
}
