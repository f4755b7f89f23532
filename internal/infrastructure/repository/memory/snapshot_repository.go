package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jmcauliffe/gamepulse/internal/domain/snapshot"
)

type SnapshotRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []snapshot.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{nextID: 1}
}

func (r *SnapshotRepository) Insert(_ context.Context, item snapshot.Snapshot) (snapshot.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, item)
	return item, nil
}

func (r *SnapshotRepository) ListByGame(_ context.Context, gameID int64) ([]snapshot.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]snapshot.Snapshot, 0, 8)
	for _, item := range r.rows {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CapturedAt.Before(out[j].CapturedAt)
	})
	return out, nil
}

func (r *SnapshotRepository) Latest(ctx context.Context, gameID int64) (snapshot.Snapshot, bool, error) {
	rows, err := r.ListByGame(ctx, gameID)
	if err != nil || len(rows) == 0 {
		return snapshot.Snapshot{}, false, err
	}
	return rows[len(rows)-1], true, nil
}

func (r *SnapshotRepository) Current(ctx context.Context, gameID int64) (snapshot.Snapshot, bool, error) {
	rows, err := r.ListByGame(ctx, gameID)
	if err != nil {
		return snapshot.Snapshot{}, false, err
	}
	current := snapshot.SelectCurrent(rows)
	if current == nil {
		return snapshot.Snapshot{}, false, nil
	}
	return *current, true, nil
}

func (r *SnapshotRepository) HasFinal(_ context.Context, gameID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.rows {
		if item.GameID == gameID && item.IsFinal {
			return true, nil
		}
	}
	return false, nil
}
