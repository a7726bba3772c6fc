package strategy

import (
	"fmt"
)

// ErrBudgetExceeded is the panic value raised when a strategy consumes past
// its limit. It is recovered at the invoker boundary, never propagated.
type ErrBudgetExceeded struct {
	Limit uint64
}

func (e ErrBudgetExceeded) Error() string {
	return fmt.Sprintf("strategy budget of %d units exceeded", e.Limit)
}

// Budget is a consume-or-abort resource meter, one per strategy invocation.
// It bounds strategy work in compute units rather than wall-clock time, so
// the guarantee holds under any host scheduling.
type Budget struct {
	limit uint64
	used  uint64
}

// NewBudget returns a meter allowing up to limit units.
func NewBudget(limit uint64) *Budget {
	return &Budget{limit: limit}
}

// Consume charges n units against the budget. It panics with
// ErrBudgetExceeded once the limit is crossed; only the invoker recovers it.
func (b *Budget) Consume(n uint64) {
	if b.used+n < b.used || b.used+n > b.limit {
		panic(ErrBudgetExceeded{Limit: b.limit})
	}
	b.used += n
}

// Remaining returns the unused portion of the budget.
func (b *Budget) Remaining() uint64 {
	return b.limit - b.used
}
