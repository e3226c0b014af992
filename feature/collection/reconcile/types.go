package reconcile

import (
	"errors"

	"collection-manager/feature/catalog"
)

// ErrStoreFailure is returned when the apply transaction could not commit.
// The store retains its pre-batch state; the operation is retryable.
var ErrStoreFailure = errors.New("record store failed to commit")

// Plan is the computed partition of one reconciliation run.
//
// ToAdd, ToUpdate and ToRemove are disjoint, sorted ascending by remote id so
// repeated runs over the same inputs apply in identical order. Snapshot keeps
// the normalized remote record for every id in ToAdd and ToUpdate.
type Plan struct {
	ToAdd    []int64
	ToUpdate []int64
	ToRemove []int64
	Snapshot map[int64]catalog.Game

	// TotalRemote counts the valid remote records in the snapshot.
	TotalRemote int
}

// IsEmpty reports whether the plan contains no work.
func (p Plan) IsEmpty() bool {
	return len(p.ToAdd) == 0 && len(p.ToUpdate) == 0 && len(p.ToRemove) == 0
}

// Result is the observable outcome of an applied plan.
type Result struct {
	Added       int `json:"added"`
	Updated     int `json:"updated"`
	Removed     int `json:"removed"`
	TotalRemote int `json:"total_remote"`
}
