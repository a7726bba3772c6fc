package governance

import (
	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/types"
)

// Register creates the governance record for a new pool and makes initiator
// its admin. The collaborator engine calls this exactly once per pool, at
// pool creation; a second call for the same pool fails.
func (e *Engine) Register(poolID types.PoolID, initiator types.Principal) error {
	if initiator.IsEmpty() {
		return errors.Wrapf(types.ErrZeroAddress, "pool %d registration needs an initiator", poolID)
	}

	e.mu.Lock()
	if _, exists := e.pools[poolID]; exists {
		e.mu.Unlock()
		return errors.Wrapf(types.ErrPoolAlreadyRegistered, "pool %d", poolID)
	}

	rec := types.PoolRecord{ID: poolID, Admin: initiator}
	if err := e.persist(rec); err != nil {
		e.mu.Unlock()
		return errors.Wrapf(err, "persist pool %d registration", poolID)
	}
	e.pools[poolID] = &poolState{rec: rec}
	e.mu.Unlock()

	e.emit(poolID, types.EventRegistered, initiator, initiator, 0)
	e.logger.Info().
		Uint64("poolId", uint64(poolID)).
		Str("admin", string(initiator)).
		Msg("Pool registered")
	return nil
}

// ProposeAdminTransfer queues newAdmin as the pool's pending admin. Only the
// current admin may propose; proposing again replaces the previous proposal.
func (e *Engine) ProposeAdminTransfer(poolID types.PoolID, caller, newAdmin types.Principal) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.rec.Admin {
		return errors.Wrapf(types.ErrUnauthorized, "pool %d admin is %s", poolID, p.rec.Admin)
	}
	if newAdmin.IsEmpty() {
		return errors.Wrapf(types.ErrZeroAddress, "pool %d transfer proposal", poolID)
	}

	next := p.rec
	next.PendingAdmin = newAdmin
	if err := e.persist(next); err != nil {
		return errors.Wrapf(err, "persist pool %d transfer proposal", poolID)
	}
	p.rec = next

	e.emit(poolID, types.EventTransferProposed, caller, newAdmin, 0)
	e.logger.Info().
		Uint64("poolId", uint64(poolID)).
		Str("admin", string(caller)).
		Str("proposed", string(newAdmin)).
		Msg("Admin transfer proposed")
	return nil
}

// AcceptAdminTransfer completes a pending transfer. Only the proposed admin
// may accept; on success the previous admin loses all admin-only
// capabilities on the pool.
func (e *Engine) AcceptAdminTransfer(poolID types.PoolID, caller types.Principal) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rec.PendingAdmin.IsEmpty() {
		return errors.Wrapf(types.ErrNoPendingAdmin, "pool %d", poolID)
	}
	if caller != p.rec.PendingAdmin {
		return errors.Wrapf(types.ErrNotPendingAdmin, "pool %d pending admin is %s", poolID, p.rec.PendingAdmin)
	}

	next := p.rec
	previous := next.Admin
	next.Admin = next.PendingAdmin
	next.PendingAdmin = ""
	if err := e.persist(next); err != nil {
		return errors.Wrapf(err, "persist pool %d transfer acceptance", poolID)
	}
	p.rec = next

	e.emit(poolID, types.EventTransferAccepted, caller, caller, 0)
	e.logger.Info().
		Uint64("poolId", uint64(poolID)).
		Str("previousAdmin", string(previous)).
		Str("admin", string(caller)).
		Msg("Admin transfer accepted")
	return nil
}

// SetStrategy attaches the strategy named by ref to the pool, or clears the
// attachment when ref is empty. Admin only.
func (e *Engine) SetStrategy(poolID types.PoolID, caller types.Principal, ref string) error {
	p, err := e.getPool(poolID)
	if err != nil {
		return errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.rec.Admin {
		return errors.Wrapf(types.ErrUnauthorized, "pool %d admin is %s", poolID, p.rec.Admin)
	}

	stra := p.stra
	if ref == "" {
		stra = nil
	} else {
		s, err := e.registry.Resolve(ref)
		if err != nil {
			return errors.Wrapf(err, "pool %d", poolID)
		}
		stra = s
	}

	next := p.rec
	next.StrategyRef = ref
	if err := e.persist(next); err != nil {
		return errors.Wrapf(err, "persist pool %d strategy change", poolID)
	}
	p.rec = next
	p.stra = stra

	if ref == "" {
		e.emit(poolID, types.EventStrategyCleared, caller, "", 0)
		e.logger.Info().Uint64("poolId", uint64(poolID)).Msg("Strategy cleared")
	} else {
		e.emit(poolID, types.EventStrategySet, caller, types.Principal(ref), 0)
		e.logger.Info().Uint64("poolId", uint64(poolID)).Str("strategy", ref).Msg("Strategy set")
	}
	return nil
}
