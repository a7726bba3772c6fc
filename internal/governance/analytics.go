package governance

import (
	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/types"
	"github.com/openamm/poolgov/internal/utils"
)

// OnPoolInitialize is the registration hook the collaborator engine calls
// once per pool at creation.
func (e *Engine) OnPoolInitialize(poolID types.PoolID, initiator types.Principal) error {
	return e.Register(poolID, initiator)
}

// OnPreSwap is called before the collaborator engine computes a swap. It
// resolves the fee the swap pays and bumps the pool's swap counter, as one
// atomic step. It never fails for a registered pool: the counter saturates
// instead of overflowing, and strategy failure falls through inside the
// resolver, so the caller always gets a fee in [0, MaxFee].
func (e *Engine) OnPreSwap(poolID types.PoolID, swap types.SwapParams) (uint64, error) {
	p, err := e.getPool(poolID)
	if err != nil {
		return 0, errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fee := e.resolveFee(p, swap)
	p.rec.SwapCount = utils.SaturatingAdd(p.rec.SwapCount, 1)

	// Analytics are observational: a snapshot failure is logged, never
	// surfaced, so persistence trouble cannot block swaps.
	if err := e.persist(p.rec); err != nil {
		e.logger.Warn().
			Uint64("poolId", uint64(poolID)).
			Err(err).
			Msg("Failed to persist pre-swap analytics")
	}

	return fee, nil
}

// OnPostSwap is called after settlement. It folds the swap's inflow into
// the pool's cumulative volume, saturating rather than overflowing.
func (e *Engine) OnPostSwap(poolID types.PoolID, delta types.SettlementDelta) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.rec.TotalVolume = utils.SaturatingAdd(p.rec.TotalVolume, delta.VolumeIn())

	if err := e.persist(p.rec); err != nil {
		e.logger.Warn().
			Uint64("poolId", uint64(poolID)).
			Err(err).
			Msg("Failed to persist post-swap analytics")
	}

	return nil
}
