/*

FeeStrategy is the pluggable, untrusted fee computation a pool admin may
attach to their pool. Implementations are arbitrary and owned by whoever
configures the pool; the engine only ever calls them through the guarded
Invoker, which converts every failure mode into "no answer".

*/

package strategy

import (
	"github.com/openamm/poolgov/internal/types"
)

// PoolContext is the read-only view of a pool's governance state handed to a
// strategy. Strategies never see, and cannot touch, the live record.
type PoolContext struct {
	PoolID      types.PoolID
	FeeOverride uint64
	SwapCount   uint64
	TotalVolume uint64
}

// FeeStrategy computes a swap fee for one pool. Implementations must be
// side-effect free and must account their work against the supplied budget;
// a strategy that ignores the budget is cut off by the invoker anyway.
//
// The returned fee is advisory: the engine clamps it to the protocol
// ceiling, and any returned error means "no answer", not a failed swap.
type FeeStrategy interface {
	ComputeFee(pool PoolContext, swap types.SwapParams, budget *Budget) (uint64, error)
}
