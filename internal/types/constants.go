package types

// Protocol fee constants. Fees are expressed in hundredths of a basis point:
// 1 unit = 0.0001%, so 10000 units = 1.00%.
const (
	// MaxFee is the protocol ceiling. No resolved fee ever exceeds it,
	// regardless of what an attached strategy returns.
	MaxFee uint64 = 10_000

	// DefaultFee applies when a pool has neither a strategy answer nor an
	// active manual override.
	DefaultFee uint64 = 3_000

	// TimelockDelay is the number of engine ticks between queuing a manual
	// fee change and the earliest tick at which it may be finalized.
	TimelockDelay uint64 = 150
)
