package governance

import (
	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/strategy"
	"github.com/openamm/poolgov/internal/types"
)

// EffectiveFee resolves the fee a swap on this pool pays right now,
// evaluated fresh on every call. Priority chain:
//
//  1. an attached strategy that answers (clamped to MaxFee),
//  2. an active manual override,
//  3. the protocol default.
//
// The chain is fail-open against strategy failure (a broken strategy never
// blocks a swap) and fail-closed on the ceiling (nothing can push the result
// above MaxFee). The returned fee is always in [0, MaxFee].
func (e *Engine) EffectiveFee(poolID types.PoolID, swap types.SwapParams) (uint64, error) {
	p, err := e.getPool(poolID)
	if err != nil {
		return 0, errors.Wrapf(err, "pool %d", poolID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return e.resolveFee(p, swap), nil
}

// resolveFee runs the priority chain. Callers hold p.mu.
func (e *Engine) resolveFee(p *poolState, swap types.SwapParams) uint64 {
	if p.stra != nil {
		ctx := strategy.PoolContext{
			PoolID:      p.rec.ID,
			FeeOverride: p.rec.FeeOverride,
			SwapCount:   p.rec.SwapCount,
			TotalVolume: p.rec.TotalVolume,
		}
		if fee, ok := e.invoker.TryComputeFee(p.stra, ctx, swap); ok {
			return fee
		}
	}
	if p.rec.FeeOverride != 0 {
		return p.rec.FeeOverride
	}
	return types.DefaultFee
}
