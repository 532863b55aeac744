package booking

import (
	"encoding/json"
	"math/big"
)

var hundred = big.NewRat(100, 1)

// MinorUnits converts a major-unit amount into integer cents, rounding half up.
// The conversion works on the decimal text rather than a float64 so boundary
// values keep their meaning: 12.345 becomes 1235, not 1234. A result that is
// not a positive integer fails with ErrInvalidAmount.
func MinorUnits(amount json.Number) (int64, error) {
	r, ok := new(big.Rat).SetString(amount.String())
	if !ok {
		return 0, ErrInvalidAmount
	}
	r.Mul(r, hundred)

	if r.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}

	rem := new(big.Int)
	q, _ := new(big.Int).QuoRem(r.Num(), r.Denom(), rem)
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	if !q.IsInt64() || q.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}

	return q.Int64(), nil
}
