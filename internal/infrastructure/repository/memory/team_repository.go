package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmcauliffe/gamepulse/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	teams  map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{nextID: 1, teams: make(map[int64]team.Team)}
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.Name == name {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByNameContains(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	best := team.Team{}
	found := false
	for _, item := range r.teams {
		stored := strings.ToLower(item.Name)
		if !strings.Contains(stored, needle) && !strings.Contains(needle, stored) {
			continue
		}
		if !found || item.ID < best.ID {
			best = item
			found = true
		}
	}
	return best, found, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[id]
	return item, ok, nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, ids []int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.teams[id]; ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teams {
		if existing.Name == item.Name {
			return team.Team{}, team.ErrDuplicateName
		}
	}

	item.ID = r.nextID
	r.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.teams[item.ID] = item
	return item, nil
}
