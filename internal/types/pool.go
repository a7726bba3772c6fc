/*

Core governance types for per-pool fee management. A PoolRecord carries
everything this engine knows about one pool; the collaborator swap engine
owns all other pool state (balances, curve math, positions).

*/

package types

import (
	"cosmossdk.io/math"

	"github.com/openamm/poolgov/internal/utils"
)

// PoolID is the opaque pool identifier assigned by the collaborator swap engine.
type PoolID uint64

// Principal identifies an external actor (pool admin, proposed admin, caller).
// It is opaque to this engine; an empty string is "no principal".
type Principal string

// IsEmpty reports whether the principal is unset.
func (p Principal) IsEmpty() bool {
	return p == ""
}

// PoolRecord is the full governance state for one pool.
//
// Admin is set exactly once at registration and never becomes empty again.
// PendingAdmin is non-empty only between a transfer proposal and its
// acceptance or replacement. FeeOverride of 0 means "no override active".
// FeeReadyAt is non-zero only while a fee change is queued and unfinalized.
type PoolRecord struct {
	ID           PoolID    `json:"id"`
	Admin        Principal `json:"admin"`
	PendingAdmin Principal `json:"pending_admin,omitempty"`
	StrategyRef  string    `json:"strategy_ref,omitempty"`
	FeeOverride  uint64    `json:"fee_override"`
	PendingFee   uint64    `json:"pending_fee"`
	FeeReadyAt   uint64    `json:"fee_ready_at"`
	SwapCount    uint64    `json:"swap_count"`
	TotalVolume  uint64    `json:"total_volume"`
}

// PendingFeeInfo is the read-only view of a pool's queued fee change.
type PendingFeeInfo struct {
	PendingFee uint64 `json:"pending_fee"`
	FeeReadyAt uint64 `json:"fee_ready_at"`
	IsReady    bool   `json:"is_ready"`
}

// SwapParams describes one swap about to be executed, as handed to the
// pre-swap hook by the collaborator engine.
type SwapParams struct {
	Sender          Principal `json:"sender,omitempty"`
	AmountSpecified math.Int  `json:"amount_specified"`
	AToB            bool      `json:"a_to_b"`
}

// SettlementDelta is the signed per-asset result of one settled swap.
// A positive amount flowed into the pool from the swapper.
type SettlementDelta struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// VolumeIn returns the magnitude of whichever side of the delta is positive,
// saturated into uint64. If neither side is positive it returns 0.
func (d SettlementDelta) VolumeIn() uint64 {
	for _, amt := range []math.Int{d.AmountA, d.AmountB} {
		if amt.IsNil() || !amt.IsPositive() {
			continue
		}
		return utils.SDKIntToUint64Saturating(amt)
	}
	return 0
}
