package expectation

import "context"

// Repository is append-only: no update or delete operations exist.
type Repository interface {
	Insert(ctx context.Context, item Expectation) (Expectation, error)
	LatestByGame(ctx context.Context, gameID int64) (Expectation, bool, error)
}
