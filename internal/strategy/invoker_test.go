package strategy

import (
	"fmt"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/types"
)

func init() {
	logger.Initialize("error")
}

type funcStrategy func(PoolContext, types.SwapParams, *Budget) (uint64, error)

func (f funcStrategy) ComputeFee(p PoolContext, s types.SwapParams, b *Budget) (uint64, error) {
	return f(p, s, b)
}

func testSwap() types.SwapParams {
	return types.SwapParams{AmountSpecified: sdkmath.NewInt(100)}
}

func TestTryComputeFeeHappyPath(t *testing.T) {
	inv := NewInvoker(0)

	fee, ok := inv.TryComputeFee(NewFixedFee(42), PoolContext{PoolID: 1}, testSwap())
	require.True(t, ok)
	require.Equal(t, uint64(42), fee)
}

func TestTryComputeFeeNilStrategy(t *testing.T) {
	inv := NewInvoker(0)

	_, ok := inv.TryComputeFee(nil, PoolContext{}, testSwap())
	require.False(t, ok)
}

func TestTryComputeFeeClampsToMaxFee(t *testing.T) {
	inv := NewInvoker(0)

	fee, ok := inv.TryComputeFee(NewFixedFee(999999), PoolContext{}, testSwap())
	require.True(t, ok)
	require.Equal(t, types.MaxFee, fee)

	// MaxFee itself passes through unclamped.
	fee, ok = inv.TryComputeFee(NewFixedFee(types.MaxFee), PoolContext{}, testSwap())
	require.True(t, ok)
	require.Equal(t, types.MaxFee, fee)
}

func TestTryComputeFeeErrorIsNoAnswer(t *testing.T) {
	inv := NewInvoker(0)

	s := funcStrategy(func(PoolContext, types.SwapParams, *Budget) (uint64, error) {
		return 5000, fmt.Errorf("oracle offline")
	})
	_, ok := inv.TryComputeFee(s, PoolContext{}, testSwap())
	require.False(t, ok)
}

func TestTryComputeFeeRecoversPanic(t *testing.T) {
	inv := NewInvoker(0)

	s := funcStrategy(func(PoolContext, types.SwapParams, *Budget) (uint64, error) {
		var m map[string]uint64
		m["boom"] = 1 // nil map write
		return 0, nil
	})
	require.NotPanics(t, func() {
		_, ok := inv.TryComputeFee(s, PoolContext{}, testSwap())
		require.False(t, ok)
	})
}

func TestTryComputeFeeCutsOffBudgetHogs(t *testing.T) {
	inv := NewInvoker(50)

	var consumed uint64
	s := funcStrategy(func(_ PoolContext, _ types.SwapParams, b *Budget) (uint64, error) {
		for {
			b.Consume(10)
			consumed += 10
		}
	})
	_, ok := inv.TryComputeFee(s, PoolContext{}, testSwap())
	require.False(t, ok)
	require.Equal(t, uint64(50), consumed)
}

func TestBudgetConsume(t *testing.T) {
	b := NewBudget(100)
	b.Consume(40)
	require.Equal(t, uint64(60), b.Remaining())
	b.Consume(60)
	require.Equal(t, uint64(0), b.Remaining())

	require.PanicsWithValue(t, ErrBudgetExceeded{Limit: 100}, func() {
		b.Consume(1)
	})
}

func TestBudgetConsumeOverflowIsExceeded(t *testing.T) {
	b := NewBudget(100)
	b.Consume(10)

	// A consume large enough to wrap uint64 must still trip the meter.
	require.Panics(t, func() {
		b.Consume(^uint64(0))
	})
}
