package governance

import (
	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/types"
)

// Snapshot returns a copy of the pool's full governance record.
func (e *Engine) Snapshot(poolID types.PoolID) (types.PoolRecord, error) {
	p, err := e.getPool(poolID)
	if err != nil {
		return types.PoolRecord{}, errors.Wrapf(err, "pool %d", poolID)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rec, nil
}

// Admin returns the pool's current admin.
func (e *Engine) Admin(poolID types.PoolID) (types.Principal, error) {
	rec, err := e.Snapshot(poolID)
	return rec.Admin, err
}

// PendingAdmin returns the proposed admin of an in-progress transfer, or
// empty when no transfer is pending.
func (e *Engine) PendingAdmin(poolID types.PoolID) (types.Principal, error) {
	rec, err := e.Snapshot(poolID)
	return rec.PendingAdmin, err
}

// Strategy returns the pool's attached strategy reference, or empty.
func (e *Engine) Strategy(poolID types.PoolID) (string, error) {
	rec, err := e.Snapshot(poolID)
	return rec.StrategyRef, err
}

// SwapCount returns the pool's saturating swap counter.
func (e *Engine) SwapCount(poolID types.PoolID) (uint64, error) {
	rec, err := e.Snapshot(poolID)
	return rec.SwapCount, err
}

// TotalVolume returns the pool's saturating cumulative inflow volume.
func (e *Engine) TotalVolume(poolID types.PoolID) (uint64, error) {
	rec, err := e.Snapshot(poolID)
	return rec.TotalVolume, err
}
