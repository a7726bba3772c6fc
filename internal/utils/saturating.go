/*
This file contains common utility functions for saturating integer
arithmetic and SDK math conversions used by the analytics counters.
*/

package utils

import (
	"math"

	sdkmath "cosmossdk.io/math"
)

// SaturatingAdd adds two uint64 values, pinning at math.MaxUint64 instead of
// wrapping. The analytics counters are informational only, so overflow is
// defined away rather than treated as an error.
func SaturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

// SDKIntToUint64Saturating converts a non-negative sdkmath.Int into uint64,
// pinning at math.MaxUint64 when it does not fit. Nil and negative amounts
// convert to 0.
func SDKIntToUint64Saturating(amount sdkmath.Int) uint64 {
	if amount.IsNil() || amount.IsNegative() {
		return 0
	}
	if !amount.IsUint64() {
		return math.MaxUint64
	}
	return amount.Uint64()
}
