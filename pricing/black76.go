package pricing

import (
	"math"

	"github.com/bcdannyboy/optstruct/models"
)

// Black76 is a European option on a forward or futures price. Carry is
// embedded in the forward, so there is no dividend input.
type Black76 struct {
	market
}

func NewBlack76(kind models.OptionKind, F, K, T, r, sigma float64) (Black76, error) {
	b := Black76{market{kind: kind, underlying: F, strike: K, expiry: T, rate: r, sigma: sigma}}
	if err := validateMarket("F", b.market); err != nil {
		return Black76{}, err
	}
	return b, nil
}

func NewBlack76Call(F, K, T, r, sigma float64) (Black76, error) {
	return NewBlack76(models.Call, F, K, T, r, sigma)
}

func NewBlack76Put(F, K, T, r, sigma float64) (Black76, error) {
	return NewBlack76(models.Put, F, K, T, r, sigma)
}

func (b Black76) d1() float64 {
	return (math.Log(b.underlying/b.strike) + 0.5*b.sigma*b.sigma*b.expiry) / b.volSqrtT()
}

func (b Black76) d2() float64 {
	return b.d1() - b.volSqrtT()
}

func (b Black76) Price() float64 {
	F, K := b.underlying, b.strike
	d1, d2 := b.d1(), b.d2()
	if b.kind == models.Call {
		return math.Max(0, b.discount()*(F*normCDF(d1)-K*normCDF(d2)))
	}
	return math.Max(0, b.discount()*(K*normCDF(-d2)-F*normCDF(-d1)))
}

// Delta is with respect to the forward price.
func (b Black76) Delta() float64 {
	if b.kind == models.Call {
		return b.discount() * normCDF(b.d1())
	}
	return -b.discount() * normCDF(-b.d1())
}

func (b Black76) Gamma() float64 {
	return b.discount() * normPDF(b.d1()) / (b.underlying * b.volSqrtT())
}

func (b Black76) Vega() float64 {
	return b.underlying * b.discount() * normPDF(b.d1()) * math.Sqrt(b.expiry)
}

func (b Black76) Theta() float64 {
	F, K, r := b.underlying, b.strike, b.rate
	d1, d2 := b.d1(), b.d2()
	df := b.discount()
	decay := -F * df * normPDF(d1) * b.sigma / (2 * math.Sqrt(b.expiry))
	if b.kind == models.Call {
		return decay - r*K*df*normCDF(d2) + r*F*df*normCDF(d1)
	}
	return decay + r*K*df*normCDF(-d2) - r*F*df*normCDF(-d1)
}

// Rho holds the forward fixed, so only the discount factor moves.
func (b Black76) Rho() float64 {
	return -b.expiry * b.Price()
}

func (b Black76) DualDelta() float64 {
	if b.kind == models.Call {
		return -b.discount() * normCDF(b.d2())
	}
	return b.discount() * normCDF(-b.d2())
}

// Charm is -dDelta/dT with the forward held fixed.
func (b Black76) Charm() float64 {
	df := b.discount()
	decay := df * normPDF(b.d1()) * b.d2() / (2 * b.expiry)
	if b.kind == models.Call {
		return b.rate*df*normCDF(b.d1()) + decay
	}
	return -b.rate*df*normCDF(-b.d1()) + decay
}

func (b Black76) InTheMoney() float64 {
	if b.kind == models.Call {
		return normCDF(b.d2())
	}
	return normCDF(-b.d2())
}
