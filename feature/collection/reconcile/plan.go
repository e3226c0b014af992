package reconcile

import (
	"sort"
	"strings"

	"collection-manager/feature/catalog"
	"collection-manager/feature/collection/models"
)

// BuildPlan partitions a remote snapshot against the owner's local records
// for one source.
//
// Remote records with a blank name are invalid and never enter the
// partition, so they neither create nor keep alive a local record. Local
// records without a remote id for this source are outside the partition
// entirely (manual additions from the other source are never removed).
// Duplicate remote ids in the snapshot collapse to the last occurrence.
func BuildPlan(local []models.Game, remote []catalog.Game, source catalog.Source) Plan {
	snapshot := make(map[int64]catalog.Game, len(remote))
	for _, r := range remote {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		snapshot[r.RemoteID] = r
	}

	localIDs := make(map[int64]struct{}, len(local))
	for _, g := range local {
		if id := g.RemoteID(source); id != nil {
			localIDs[*id] = struct{}{}
		}
	}

	plan := Plan{
		Snapshot:    snapshot,
		TotalRemote: len(snapshot),
	}
	for id := range snapshot {
		if _, ok := localIDs[id]; ok {
			plan.ToUpdate = append(plan.ToUpdate, id)
		} else {
			plan.ToAdd = append(plan.ToAdd, id)
		}
	}
	for id := range localIDs {
		if _, ok := snapshot[id]; !ok {
			plan.ToRemove = append(plan.ToRemove, id)
		}
	}

	// Deterministic apply order for reproducible runs.
	sortIDs(plan.ToAdd)
	sortIDs(plan.ToUpdate)
	sortIDs(plan.ToRemove)

	return plan
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
