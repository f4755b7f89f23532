package memory

import (
	"context"
	"sync"

	"github.com/jmcauliffe/gamepulse/internal/domain/expectation"
)

type ExpectationRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   []expectation.Expectation
}

func NewExpectationRepository() *ExpectationRepository {
	return &ExpectationRepository{nextID: 1}
}

func (r *ExpectationRepository) Insert(_ context.Context, item expectation.Expectation) (expectation.Expectation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, item)
	return item, nil
}

func (r *ExpectationRepository) LatestByGame(_ context.Context, gameID int64) (expectation.Expectation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := expectation.Expectation{}
	found := false
	for _, item := range r.rows {
		if item.GameID == nil || *item.GameID != gameID {
			continue
		}
		if !found || item.CapturedAt.After(best.CapturedAt) {
			best = item
			found = true
		}
	}
	return best, found, nil
}

// All returns every stored row; test helper.
func (r *ExpectationRepository) All() []expectation.Expectation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]expectation.Expectation, len(r.rows))
	copy(out, r.rows)
	return out
}
