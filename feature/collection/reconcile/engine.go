package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"collection-manager/feature/catalog"
	"collection-manager/feature/collection/models"
)

// Engine applies reconciliation plans to the record store.
//
// Every apply runs inside a single transaction while holding the owner's
// lock, so a sync either lands completely or leaves the collection as it
// was, and two runs for the same owner never interleave.
type Engine struct {
	db     *gorm.DB
	logger *zap.Logger
	locks  *ownerLocks
}

func NewEngine(db *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		logger: logger,
		locks:  newOwnerLocks(),
	}
}

// Sync reconciles the owner's local records against the remote snapshot
// for one source. Records linked to the source but missing from the
// snapshot are removed; records only the other source knows about are
// left alone.
func (e *Engine) Sync(ctx context.Context, ownerID uint, source catalog.Source, remote []catalog.Game) (Result, error) {
	lock := e.locks.get(ownerID)
	lock.Lock()
	defer lock.Unlock()

	local, err := e.loadOwned(ctx, ownerID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	plan := BuildPlan(local, remote, source)
	result := Result{TotalRemote: plan.TotalRemote}
	if plan.IsEmpty() {
		return result, nil
	}

	byRemoteID := make(map[int64]*models.Game, len(local))
	for i := range local {
		if id := local[i].RemoteID(source); id != nil {
			byRemoteID[*id] = &local[i]
		}
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range plan.ToAdd {
			record := models.NewFromRemote(ownerID, source, plan.Snapshot[id])
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("adding remote id %d: %w", id, err)
			}
		}
		for _, id := range plan.ToUpdate {
			record := byRemoteID[id]
			record.ApplyRemote(plan.Snapshot[id])
			now := time.Now()
			record.UpdatedAt = &now
			if err := tx.Save(record).Error; err != nil {
				return fmt.Errorf("updating remote id %d: %w", id, err)
			}
		}
		if len(plan.ToRemove) > 0 {
			res := tx.Where("user_id = ? AND "+sourceColumn(source)+" IN ?", ownerID, plan.ToRemove).
				Delete(&models.Game{})
			if res.Error != nil {
				return fmt.Errorf("removing stale records: %w", res.Error)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	result.Added = len(plan.ToAdd)
	result.Updated = len(plan.ToUpdate)
	result.Removed = len(plan.ToRemove)

	e.logger.Info("collection sync applied",
		zap.Uint("user_id", ownerID),
		zap.String("source", string(source)),
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("removed", result.Removed),
		zap.Int("total_remote", result.TotalRemote))

	return result, nil
}

// Import adds the remote records the owner does not have yet and returns
// them as created. Records the owner already holds and records missing from
// the snapshot are left untouched, so re-importing the same batch is a
// no-op.
func (e *Engine) Import(ctx context.Context, ownerID uint, source catalog.Source, remote []catalog.Game) ([]models.Game, Result, error) {
	lock := e.locks.get(ownerID)
	lock.Lock()
	defer lock.Unlock()

	local, err := e.loadOwned(ctx, ownerID)
	if err != nil {
		return nil, Result{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	plan := BuildPlan(local, remote, source)
	result := Result{TotalRemote: plan.TotalRemote}
	if len(plan.ToAdd) == 0 {
		return nil, result, nil
	}

	created := make([]models.Game, 0, len(plan.ToAdd))
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range plan.ToAdd {
			record := models.NewFromRemote(ownerID, source, plan.Snapshot[id])
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("importing remote id %d: %w", id, err)
			}
			created = append(created, record)
		}
		return nil
	})
	if err != nil {
		return nil, Result{}, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	result.Added = len(created)

	e.logger.Info("collection import applied",
		zap.Uint("user_id", ownerID),
		zap.String("source", string(source)),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.TotalRemote-result.Added))

	return created, result, nil
}

func (e *Engine) loadOwned(ctx context.Context, ownerID uint) ([]models.Game, error) {
	var local []models.Game
	if err := e.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&local).Error; err != nil {
		return nil, err
	}
	return local, nil
}

func sourceColumn(source catalog.Source) string {
	if source == catalog.SourceBGG {
		return "bgg_id"
	}
	return "ludopedia_id"
}
