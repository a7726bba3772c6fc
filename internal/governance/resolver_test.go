package governance

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openamm/poolgov/internal/types"
)

func swapOf(amount int64) types.SwapParams {
	return types.SwapParams{AmountSpecified: sdkmath.NewInt(amount)}
}

func TestEffectiveFeeDefault(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	fee, err := engine.EffectiveFee(1, swapOf(100))
	require.NoError(t, err)
	require.Equal(t, types.DefaultFee, fee)
}

func TestEffectiveFeeOverrideBeatsDefault(t *testing.T) {
	engine, clock, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.QueueFee(1, alice, 750))
	clock.tick = types.TimelockDelay
	require.NoError(t, engine.FinalizeFee(1, alice))

	fee, err := engine.EffectiveFee(1, swapOf(100))
	require.NoError(t, err)
	require.Equal(t, uint64(750), fee)
}

func TestEffectiveFeeStrategyBeatsOverride(t *testing.T) {
	engine, clock, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.QueueFee(1, alice, 750))
	clock.tick = types.TimelockDelay
	require.NoError(t, engine.FinalizeFee(1, alice))

	require.NoError(t, engine.SetStrategy(1, alice, "fixed:42"))

	fee, err := engine.EffectiveFee(1, swapOf(100))
	require.NoError(t, err)
	require.Equal(t, uint64(42), fee)
}

func TestStrategyReturnClampedToMaxFee(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.SetStrategy(1, alice, "fixed:999999"))

	fee, err := engine.EffectiveFee(1, swapOf(100))
	require.NoError(t, err)
	require.Equal(t, types.MaxFee, fee)
}

func TestStrategyFaultIsolation(t *testing.T) {
	for _, ref := range []string{"erroring", "panicky", "greedy"} {
		t.Run(ref, func(t *testing.T) {
			engine, clock, _ := newTestEngine()
			require.NoError(t, engine.Register(1, alice))
			require.NoError(t, engine.SetStrategy(1, alice, ref))

			// No override active: broken strategy falls back to the default.
			fee, err := engine.EffectiveFee(1, swapOf(100))
			require.NoError(t, err)
			require.Equal(t, types.DefaultFee, fee)

			// With an override active the fallback lands there instead.
			require.NoError(t, engine.QueueFee(1, alice, 900))
			clock.tick += types.TimelockDelay
			require.NoError(t, engine.FinalizeFee(1, alice))

			fee, err = engine.EffectiveFee(1, swapOf(100))
			require.NoError(t, err)
			require.Equal(t, uint64(900), fee)

			// The same call still counts the swap.
			before, err := engine.SwapCount(1)
			require.NoError(t, err)
			_, err = engine.OnPreSwap(1, swapOf(100))
			require.NoError(t, err)
			after, err := engine.SwapCount(1)
			require.NoError(t, err)
			require.Equal(t, before+1, after)
		})
	}
}

// Bounded fee: whatever is configured, the resolved fee stays in [0, MaxFee].
func TestEffectiveFeeAlwaysBounded(t *testing.T) {
	engine, clock, _ := newTestEngine()

	configs := []struct {
		pool     types.PoolID
		strategy string
		override uint64
	}{
		{1, "", 0},
		{2, "", types.MaxFee},
		{3, "fixed:0", 0},
		{4, "fixed:999999", 0},
		{5, "erroring", 1},
		{6, "panicky", types.MaxFee},
		{7, "greedy", 0},
		{8, "fixed:10000", 5000},
	}

	for _, cfg := range configs {
		require.NoError(t, engine.Register(cfg.pool, alice))
		if cfg.strategy != "" {
			require.NoError(t, engine.SetStrategy(cfg.pool, alice, cfg.strategy))
		}
		if cfg.override != 0 {
			require.NoError(t, engine.QueueFee(cfg.pool, alice, cfg.override))
			clock.tick += types.TimelockDelay
			require.NoError(t, engine.FinalizeFee(cfg.pool, alice))
		}
	}

	for _, cfg := range configs {
		fee, err := engine.EffectiveFee(cfg.pool, swapOf(1000))
		require.NoError(t, err)
		require.LessOrEqual(t, fee, types.MaxFee, "pool %d", cfg.pool)
	}
}

func TestEffectiveFeeEvaluatedFreshPerCall(t *testing.T) {
	engine, _, _ := newTestEngine()
	require.NoError(t, engine.Register(1, alice))

	require.NoError(t, engine.SetStrategy(1, alice, "fixed:42"))
	fee, err := engine.EffectiveFee(1, swapOf(1))
	require.NoError(t, err)
	require.Equal(t, uint64(42), fee)

	// Detaching the strategy changes the answer immediately; nothing cached.
	require.NoError(t, engine.SetStrategy(1, alice, ""))
	fee, err = engine.EffectiveFee(1, swapOf(1))
	require.NoError(t, err)
	require.Equal(t, types.DefaultFee, fee)
}
