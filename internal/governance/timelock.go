package governance

import (
	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/types"
)

// QueueFee queues a manual fee override for the pool, to become finalizable
// TimelockDelay ticks from now. Admin only. Queuing again before
// finalization replaces the pending value and restarts the delay
// (last-writer-wins; there is no queue of multiple pending changes).
//
// The delay exists so an admin cannot instantly reprice a swap they can see
// in flight on their own pool.
func (e *Engine) QueueFee(poolID types.PoolID, caller types.Principal, value uint64) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.rec.Admin {
		return errors.Wrapf(types.ErrUnauthorized, "pool %d admin is %s", poolID, p.rec.Admin)
	}
	if value > types.MaxFee {
		return errors.Wrapf(types.ErrFeeTooHigh, "%d > %d", value, types.MaxFee)
	}

	next := p.rec
	next.PendingFee = value
	next.FeeReadyAt = e.clock.Now() + types.TimelockDelay
	if err := e.persist(next); err != nil {
		return errors.Wrapf(err, "persist pool %d fee queue", poolID)
	}
	p.rec = next

	e.emit(poolID, types.EventFeeQueued, caller, "", value)
	e.logger.Info().
		Uint64("poolId", uint64(poolID)).
		Uint64("pendingFee", value).
		Uint64("readyAt", next.FeeReadyAt).
		Msg("Fee change queued")
	return nil
}

// FinalizeFee activates the queued fee once its delay has elapsed. It is
// deliberately permissionless: once the timelock has run, anyone may apply
// the change, so admin inaction cannot strand a queued value.
func (e *Engine) FinalizeFee(poolID types.PoolID, caller types.Principal) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := e.clock.Now()
	if p.rec.FeeReadyAt == 0 || now < p.rec.FeeReadyAt {
		return errors.Wrapf(types.ErrFeeChangeTimelocked, "pool %d ready at tick %d, now %d", poolID, p.rec.FeeReadyAt, now)
	}

	next := p.rec
	activated := next.PendingFee
	next.FeeOverride = activated
	next.PendingFee = 0
	next.FeeReadyAt = 0
	if err := e.persist(next); err != nil {
		return errors.Wrapf(err, "persist pool %d fee finalization", poolID)
	}
	p.rec = next

	e.emit(poolID, types.EventFeeFinalized, caller, "", activated)
	e.logger.Info().
		Uint64("poolId", uint64(poolID)).
		Uint64("feeOverride", activated).
		Msg("Fee change finalized")
	return nil
}

// PendingFeeInfo returns the pool's queued fee change, if any, and whether
// it is ready to finalize at the current tick.
func (e *Engine) PendingFeeInfo(poolID types.PoolID) (types.PendingFeeInfo, error) {
	p, err := e.getPool(poolID)
	if err != nil {
		return types.PendingFeeInfo{}, errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return types.PendingFeeInfo{
		PendingFee: p.rec.PendingFee,
		FeeReadyAt: p.rec.FeeReadyAt,
		IsReady:    p.rec.FeeReadyAt != 0 && e.clock.Now() >= p.rec.FeeReadyAt,
	}, nil
}
