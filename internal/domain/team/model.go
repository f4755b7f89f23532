package team

import (
	"errors"
	"strings"
	"time"
)

// ErrDuplicateName is surfaced by repositories when an insert loses the
// find-or-create race on the unique name column. Callers re-lookup.
var ErrDuplicateName = errors.New("team name already exists")

// Team is created on first sighting of an unknown name during ingestion and
// is immutable afterwards except by administrative correction.
type Team struct {
	ID        int64
	Name      string
	League    string
	CreatedAt time.Time
}

// NormalizeName trims the provider-supplied team name. Matching is exact on
// the normalized form; fuzzier strategies live in the reconciler.
func NormalizeName(value string) string {
	return strings.TrimSpace(value)
}
