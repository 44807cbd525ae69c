package positions

import (
	"math"

	"github.com/bcdannyboy/optstruct/models"
)

// symmetryTolerance is relative to the wing width. Strikes that are a few
// ulps apart at their own magnitude also count as equal, so decimal wings
// (0.1, 0.2, 0.3 or 1000000.1, 1000000.2, 1000000.3) still pass.
const (
	symmetryTolerance = 1e-9
	symmetryUlps      = 4
)

func validateButterflyStrikes(K1, K2, K3 float64) error {
	for _, k := range []float64{K1, K2, K3} {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return models.NewStrikeError("must be finite", K1, K2, K3)
		}
	}
	if !(K1 < K2 && K2 < K3) {
		return models.NewStrikeError("must satisfy K1 < K2 < K3", K1, K2, K3)
	}
	lower, upper := K2-K1, K3-K2
	top := math.Abs(K3)
	ulp := math.Nextafter(top, math.Inf(1)) - top
	tol := math.Max(symmetryTolerance*math.Max(lower, upper), symmetryUlps*ulp)
	if math.Abs(lower-upper) > tol {
		return models.NewStrikeError("must be symmetric (K2-K1 == K3-K2)", K1, K2, K3)
	}
	return nil
}

// NewButterflyLong builds Call(K1) - 2*Call(K2) + Call(K3).
func NewButterflyLong(legs LegFactory, K1, K2, K3 float64) (*Structure, error) {
	if err := validateButterflyStrikes(K1, K2, K3); err != nil {
		return nil, err
	}
	return build(models.ButterflyLong, legs, []legSpec{
		{models.Call, K1, 1},
		{models.Call, K2, -2},
		{models.Call, K3, 1},
	})
}

// NewButterflyShort builds -Put(K1) + 2*Put(K2) - Put(K3).
func NewButterflyShort(legs LegFactory, K1, K2, K3 float64) (*Structure, error) {
	if err := validateButterflyStrikes(K1, K2, K3); err != nil {
		return nil, err
	}
	return build(models.ButterflyShort, legs, []legSpec{
		{models.Put, K1, -1},
		{models.Put, K2, 2},
		{models.Put, K3, -1},
	})
}

func NewBlackScholesButterflyLong(S, K1, K2, K3, T, r, sigma, q float64) (*Structure, error) {
	return NewButterflyLong(BlackScholesLegs(S, T, r, sigma, q), K1, K2, K3)
}

func NewBlackScholesButterflyShort(S, K1, K2, K3, T, r, sigma, q float64) (*Structure, error) {
	return NewButterflyShort(BlackScholesLegs(S, T, r, sigma, q), K1, K2, K3)
}

func NewBlack76ButterflyLong(F, K1, K2, K3, T, r, sigma float64) (*Structure, error) {
	return NewButterflyLong(Black76Legs(F, T, r, sigma), K1, K2, K3)
}

func NewBlack76ButterflyShort(F, K1, K2, K3, T, r, sigma float64) (*Structure, error) {
	return NewButterflyShort(Black76Legs(F, T, r, sigma), K1, K2, K3)
}
