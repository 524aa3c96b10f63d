package league

import (
	"encoding/json"
	"fmt"
)

// Percent is a percentage in hundredths (basis points), so 3333 is 33.33%.
type Percent int64

// PercentOf returns part/whole floored to two decimals, or 0 when whole is 0.
func PercentOf(part, whole int64) Percent {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return BasisPointsDenominator
	}
	return Percent(part * BasisPointsDenominator / whole)
}

// String renders the value with exactly two decimals.
func (p Percent) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON encodes the two-decimal string form.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
