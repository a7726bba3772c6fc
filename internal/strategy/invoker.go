package strategy

import (
	"github.com/rs/zerolog"

	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/types"
)

// DefaultBudgetLimit bounds one strategy invocation when no limit is configured.
const DefaultBudgetLimit uint64 = 100_000

// Invoker performs the single guarded call into an untrusted strategy.
// Every non-success outcome (returned error, panic, exhausted budget) is
// treated identically: no answer, fall through. There is no retry.
type Invoker struct {
	logger      zerolog.Logger
	budgetLimit uint64
}

// NewInvoker returns an invoker with the given per-call budget limit.
// A zero limit selects DefaultBudgetLimit.
func NewInvoker(budgetLimit uint64) *Invoker {
	if budgetLimit == 0 {
		budgetLimit = DefaultBudgetLimit
	}
	return &Invoker{
		logger:      logger.GetForComponent("strategy_invoker"),
		budgetLimit: budgetLimit,
	}
}

// TryComputeFee invokes the strategy and reports whether it produced a fee.
// The fee, when present, is already clamped to [0, types.MaxFee]: a strategy
// cannot force a fee above the protocol ceiling even if it tries.
func (i *Invoker) TryComputeFee(s FeeStrategy, pool PoolContext, swap types.SwapParams) (fee uint64, ok bool) {
	if s == nil {
		return 0, false
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Warn().
				Uint64("poolId", uint64(pool.PoolID)).
				Interface("panic", r).
				Msg("Strategy panicked; falling through")
			fee, ok = 0, false
		}
	}()

	raw, err := s.ComputeFee(pool, swap, NewBudget(i.budgetLimit))
	if err != nil {
		i.logger.Debug().
			Uint64("poolId", uint64(pool.PoolID)).
			Err(err).
			Msg("Strategy returned error; falling through")
		return 0, false
	}

	if raw > types.MaxFee {
		i.logger.Debug().
			Uint64("poolId", uint64(pool.PoolID)).
			Uint64("returned", raw).
			Uint64("clamped", types.MaxFee).
			Msg("Strategy fee clamped to protocol maximum")
		raw = types.MaxFee
	}
	return raw, true
}
