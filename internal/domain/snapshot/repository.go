package snapshot

import "context"

// Repository is append-only: snapshots are never updated or deleted.
type Repository interface {
	Insert(ctx context.Context, item Snapshot) (Snapshot, error)
	ListByGame(ctx context.Context, gameID int64) ([]Snapshot, error)
	// Latest returns the most recently captured snapshot regardless of the
	// final flag; use Current for display selection.
	Latest(ctx context.Context, gameID int64) (Snapshot, bool, error)
	// Current applies the SelectCurrent contract: final wins over recency.
	Current(ctx context.Context, gameID int64) (Snapshot, bool, error)
	HasFinal(ctx context.Context, gameID int64) (bool, error)
}
