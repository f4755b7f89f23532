package memory

import (
	"context"
	"sort"
	"sync"
)

type FavoriteRepository struct {
	mu     sync.RWMutex
	byUser map[int64][]int64
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{byUser: make(map[int64][]int64)}
}

func (r *FavoriteRepository) ListTeamIDs(_ context.Context, userID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byUser[userID]
	out := make([]int64, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *FavoriteRepository) Replace(_ context.Context, userID int64, teamIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]int64, len(teamIDs))
	copy(stored, teamIDs)
	sort.Slice(stored, func(i, j int) bool { return stored[i] < stored[j] })
	r.byUser[userID] = stored
	return nil
}
