package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	nextID int64
	games  map[int64]game.Game
}

func NewGameRepository() *GameRepository {
	return &GameRepository{nextID: 1, games: make(map[int64]game.Game)}
}

func (r *GameRepository) GetByID(_ context.Context, id int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[id]
	return item, ok, nil
}

func (r *GameRepository) FindByPairWithinWindow(_ context.Context, homeTeamID, awayTeamID int64, commence time.Time, window time.Duration) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := game.Game{}
	found := false
	for _, item := range r.games {
		if item.HomeTeamID != homeTeamID || item.AwayTeamID != awayTeamID {
			continue
		}
		delta := item.ScheduledTime.Sub(commence)
		if delta < 0 {
			delta = -delta
		}
		if delta > window {
			continue
		}
		if !found || item.ScheduledTime.Before(best.ScheduledTime) {
			best = item
			found = true
		}
	}
	return best, found, nil
}

func (r *GameRepository) FindLatestByPair(_ context.Context, homeTeamID, awayTeamID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := game.Game{}
	found := false
	for _, item := range r.games {
		if item.HomeTeamID != homeTeamID || item.AwayTeamID != awayTeamID {
			continue
		}
		if !found || item.ScheduledTime.After(best.ScheduledTime) {
			best = item
			found = true
		}
	}
	return best, found, nil
}

func (r *GameRepository) Insert(_ context.Context, item game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.games[item.ID] = item
	return item, nil
}

func (r *GameRepository) UpdateStatus(_ context.Context, id int64, status string, completedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.games[id]
	if !ok {
		return fmt.Errorf("game id=%d not found", id)
	}
	item.Status = status
	if item.CompletedAt == nil && completedAt != nil {
		item.CompletedAt = completedAt
	}
	item.UpdatedAt = time.Now().UTC()
	r.games[id] = item
	return nil
}

func (r *GameRepository) ListBySport(_ context.Context, sportKey string, limit int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, limit)
	for _, item := range r.games {
		if item.SportKey == sportKey {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledTime.After(out[j].ScheduledTime)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *GameRepository) ActivityCounts(_ context.Context, now time.Time) (game.ActivityCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var counts game.ActivityCounts
	for _, item := range r.games {
		switch item.Status {
		case game.StatusLive:
			counts.Live++
		case game.StatusUpcoming:
			if !item.ScheduledTime.After(now) && item.ScheduledTime.After(now.Add(-3*time.Hour)) {
				counts.ShouldBeLive++
			}
			if item.ScheduledTime.After(now) && !item.ScheduledTime.After(now.Add(time.Hour)) {
				counts.StartingSoon++
			}
		}
	}
	return counts, nil
}
