package services

import (
	"context"
	"sort"

	"scad/internal/models"
	"scad/internal/store"
	"scad/internal/structures"
)

const DefaultLeaderboardLimit = 10

// topArtLimit is fixed; the art board has no limit parameter.
const topArtLimit = 10

type QueryServiceInterface interface {
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	GetServerStats(ctx context.Context) (*models.GlobalStats, error)
	GetUserStats(ctx context.Context, userID string) (*models.UserRecord, error)
	GetTopArt(ctx context.Context) ([]models.LeaderboardEntry, error)
	GetRoleDistribution(ctx context.Context) ([]models.RoleCount, error)
}

// QueryService is the read path: it fetches raw counter trees and assembles
// ranked, limited result sets. Absent data is never an error; empty results
// and nil records are the explicit no-data signal, distinct from a store
// failure.
type QueryService struct {
	store    store.KeyedStore
	root     string
	magRoles []string
}

func NewQueryService(conf *structures.Config, st store.KeyedStore) QueryServiceInterface {
	return &QueryService{
		store:    st,
		root:     conf.Store.RootPath,
		magRoles: conf.Tracking.MagRoles,
	}
}

// users fetches the whole user collection and projects it in store key
// order, which keeps ranking output stable for a given store state.
func (qs *QueryService) users(ctx context.Context) ([]models.LeaderboardEntry, error) {
	raw, err := qs.store.Get(ctx, models.UsersPath(qs.root))
	if err != nil {
		return nil, err
	}
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}

	ids := make([]string, 0, len(tree))
	for id := range tree {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]models.LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		fields, ok := tree[id].(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, models.UserRecordFromTree(id, fields).LeaderboardEntry())
	}
	return entries, nil
}

func (qs *QueryService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	entries, err := qs.users(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalMessages > entries[j].TotalMessages
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (qs *QueryService) GetServerStats(ctx context.Context) (*models.GlobalStats, error) {
	raw, err := qs.store.Get(ctx, models.StatsPath(qs.root))
	if err != nil {
		return nil, err
	}
	tree, _ := raw.(map[string]any)
	return models.GlobalStatsFromTree(tree), nil
}

func (qs *QueryService) GetUserStats(ctx context.Context, userID string) (*models.UserRecord, error) {
	raw, err := qs.store.Get(ctx, models.UserPath(qs.root, userID))
	if err != nil {
		return nil, err
	}
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}
	return models.UserRecordFromTree(userID, tree), nil
}

func (qs *QueryService) GetTopArt(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := qs.users(ctx)
	if err != nil {
		return nil, err
	}
	art := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.ArtSubmissions > 0 {
			art = append(art, e)
		}
	}
	sort.SliceStable(art, func(i, j int) bool {
		return art[i].ArtSubmissions > art[j].ArtSubmissions
	})
	if len(art) > topArtLimit {
		art = art[:topArtLimit]
	}
	return art, nil
}

// GetRoleDistribution returns one entry per configured magnitude role, in
// configured priority order, defaulting absent counters to 0. A role is
// never omitted just because nobody holds it.
func (qs *QueryService) GetRoleDistribution(ctx context.Context) ([]models.RoleCount, error) {
	raw, err := qs.store.Get(ctx, models.StatsPath(qs.root)+"/roles")
	if err != nil {
		return nil, err
	}
	counts := models.CounterMap(raw)

	out := make([]models.RoleCount, 0, len(qs.magRoles))
	for _, role := range qs.magRoles {
		out = append(out, models.RoleCount{
			Role:  role,
			Count: counts[models.RoleSlug(role)],
		})
	}
	return out, nil
}
