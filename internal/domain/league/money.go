package league

import (
	"errors"
	"math"
)

// Amount is a currency value in integer minor units. No floating point is
// used anywhere fees, pools or payouts are computed.
type Amount int64

// BasisPointsDenominator is 100% expressed in basis points.
const BasisPointsDenominator = 10_000

// ErrAmountOverflow is returned when an addition would exceed int64.
var ErrAmountOverflow = errors.New("amount overflow")

// Add returns a+b, failing instead of wrapping around.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return a, ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return a, ErrAmountOverflow
	}
	return a + b, nil
}

// Split divides a into a cut of bps basis points (rounded down) and the
// remainder. bps is clamped to [0, 10000]; cut+remainder always equals a.
func (a Amount) Split(bps int64) (cut, remainder Amount) {
	if a <= 0 || bps <= 0 {
		return 0, a
	}
	if bps >= BasisPointsDenominator {
		return a, 0
	}
	// a*bps can overflow for very large pools, so divide first and add the
	// remainder's share back.
	q := int64(a) / BasisPointsDenominator
	r := int64(a) % BasisPointsDenominator
	c := q*bps + r*bps/BasisPointsDenominator
	return Amount(c), a - Amount(c)
}
