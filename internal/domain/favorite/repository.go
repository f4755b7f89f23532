package favorite

import "context"

// Repository exposes favorite reads and full-list replacement.
type Repository interface {
	ListTeamIDs(ctx context.Context, userID int64) ([]int64, error)
	Replace(ctx context.Context, userID int64, teamIDs []int64) error
}
