package services

import (
	"context"
	"scad/internal/classify"
	"scad/internal/models"
	"scad/internal/providers"
	"scad/internal/store"
	"scad/internal/structures"
)

type RosterServiceInterface interface {
	SyncMemberRoles(ctx context.Context, members []models.Member) int
}

// RosterService reconciles stored role labels against the live roster. It
// is a label-correction pass only: identity fields and magRole are upserted,
// message counters, join timestamps and the global role histogram are left
// untouched.
type RosterService struct {
	store      store.KeyedStore
	classifier *classify.Classifier
	logger     providers.Logger
	root       string
}

func NewRosterService(conf *structures.Config, st store.KeyedStore, classifier *classify.Classifier, logger providers.Logger) RosterServiceInterface {
	return &RosterService{
		store:      st,
		classifier: classifier,
		logger:     logger,
		root:       conf.Store.RootPath,
	}
}

// SyncMemberRoles walks the roster once and returns the number of records
// updated. Automated accounts and members without a magnitude role are
// skipped; per-member store failures are logged and do not stop the walk.
func (rs *RosterService) SyncMemberRoles(ctx context.Context, members []models.Member) int {
	synced := 0
	for _, member := range members {
		if member.Bot {
			continue
		}
		role := rs.classifier.ResolveRole(member.RoleNames)
		if role == models.RoleNone {
			continue
		}
		err := rs.store.Update(ctx, models.UserPath(rs.root, member.UserID), map[string]any{
			models.FieldUsername:    member.Username,
			models.FieldDisplayName: member.DisplayName,
			models.FieldMagRole:     role,
		})
		if err != nil {
			rs.logger.Errorf(providers.TypeSync, "Role sync for %s failed: %s", member.UserID, err)
			continue
		}
		synced++
	}
	rs.logger.Infof(providers.TypeSync, "Synced %d member roles", synced)
	return synced
}
