package strategy

import (
	"github.com/openamm/poolgov/internal/types"
)

// fixedCost is the budget charge for one fixed-fee computation.
const fixedCost = 10

// FixedFee always returns the same fee regardless of pool or swap inputs.
// It is the reference strategy implementation.
type FixedFee struct {
	Fee uint64
}

// NewFixedFee returns a strategy that always answers fee.
func NewFixedFee(fee uint64) *FixedFee {
	return &FixedFee{Fee: fee}
}

// ComputeFee implements FeeStrategy.
func (f *FixedFee) ComputeFee(_ PoolContext, _ types.SwapParams, budget *Budget) (uint64, error) {
	budget.Consume(fixedCost)
	return f.Fee, nil
}

var _ FeeStrategy = (*FixedFee)(nil)
