package team

import "context"

// Repository exposes team lookup and creation.
type Repository interface {
	GetByName(ctx context.Context, name string) (Team, bool, error)
	// GetByNameContains matches case-insensitively by substring containment
	// in either direction. Lax by design; used only as a fallback matcher.
	GetByNameContains(ctx context.Context, name string) (Team, bool, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Team, error)
	// Insert returns ErrDuplicateName when the unique name constraint fires.
	Insert(ctx context.Context, item Team) (Team, error)
}
