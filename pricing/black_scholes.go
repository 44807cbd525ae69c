package pricing

import (
	"math"

	"github.com/bcdannyboy/optstruct/models"
)

// BlackScholes is a European option on a spot price paying a continuous
// dividend yield.
type BlackScholes struct {
	market
	q float64
}

// Option configures optional contract inputs.
type Option func(*BlackScholes)

// WithDividendYield sets the annual continuous dividend yield (0.05 is 5%).
func WithDividendYield(q float64) Option {
	return func(bs *BlackScholes) {
		bs.q = q
	}
}

// NewBlackScholes validates the inputs and returns a contract. T is in years,
// r, sigma and q are annualised decimals.
func NewBlackScholes(kind models.OptionKind, S, K, T, r, sigma, q float64) (BlackScholes, error) {
	bs := BlackScholes{
		market: market{kind: kind, underlying: S, strike: K, expiry: T, rate: r, sigma: sigma},
		q:      q,
	}
	if err := validateMarket("S", bs.market); err != nil {
		return BlackScholes{}, err
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return BlackScholes{}, models.NewInputError("q", q, "must be finite")
	}
	return bs, nil
}

func NewBlackScholesCall(S, K, T, r, sigma float64, opts ...Option) (BlackScholes, error) {
	return newBlackScholesWith(models.Call, S, K, T, r, sigma, opts)
}

func NewBlackScholesPut(S, K, T, r, sigma float64, opts ...Option) (BlackScholes, error) {
	return newBlackScholesWith(models.Put, S, K, T, r, sigma, opts)
}

func newBlackScholesWith(kind models.OptionKind, S, K, T, r, sigma float64, opts []Option) (BlackScholes, error) {
	var cfg BlackScholes
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewBlackScholes(kind, S, K, T, r, sigma, cfg.q)
}

func (bs BlackScholes) DividendYield() float64 { return bs.q }

func (bs BlackScholes) d1() float64 {
	return (math.Log(bs.underlying/bs.strike) + (bs.rate-bs.q+0.5*bs.sigma*bs.sigma)*bs.expiry) / bs.volSqrtT()
}

func (bs BlackScholes) d2() float64 {
	return bs.d1() - bs.volSqrtT()
}

func (bs BlackScholes) carry() float64 {
	return math.Exp(-bs.q * bs.expiry)
}

// Price is floored at zero; far out of the money the two terms can cancel to
// a negative denormal.
func (bs BlackScholes) Price() float64 {
	S, K := bs.underlying, bs.strike
	d1, d2 := bs.d1(), bs.d2()
	if bs.kind == models.Call {
		return math.Max(0, S*bs.carry()*normCDF(d1)-K*bs.discount()*normCDF(d2))
	}
	return math.Max(0, K*bs.discount()*normCDF(-d2)-S*bs.carry()*normCDF(-d1))
}

// Delta is the spot delta.
func (bs BlackScholes) Delta() float64 {
	if bs.kind == models.Call {
		return bs.carry() * normCDF(bs.d1())
	}
	return bs.carry() * (normCDF(bs.d1()) - 1)
}

func (bs BlackScholes) Gamma() float64 {
	return bs.carry() * normPDF(bs.d1()) / (bs.underlying * bs.volSqrtT())
}

// Vega is per unit of volatility (1.0 = 100 vol points).
func (bs BlackScholes) Vega() float64 {
	return bs.underlying * bs.carry() * normPDF(bs.d1()) * math.Sqrt(bs.expiry)
}

// Theta is the annual time decay, -dV/dT.
func (bs BlackScholes) Theta() float64 {
	S, K, r, q := bs.underlying, bs.strike, bs.rate, bs.q
	d1, d2 := bs.d1(), bs.d2()
	decay := -S * bs.carry() * normPDF(d1) * bs.sigma / (2 * math.Sqrt(bs.expiry))
	if bs.kind == models.Call {
		return decay - r*K*bs.discount()*normCDF(d2) + q*S*bs.carry()*normCDF(d1)
	}
	return decay + r*K*bs.discount()*normCDF(-d2) - q*S*bs.carry()*normCDF(-d1)
}

func (bs BlackScholes) Rho() float64 {
	if bs.kind == models.Call {
		return bs.strike * bs.expiry * bs.discount() * normCDF(bs.d2())
	}
	return -bs.strike * bs.expiry * bs.discount() * normCDF(-bs.d2())
}

// DualDelta is the first derivative of price with respect to strike.
func (bs BlackScholes) DualDelta() float64 {
	if bs.kind == models.Call {
		return -bs.discount() * normCDF(bs.d2())
	}
	return bs.discount() * normCDF(-bs.d2())
}

// Charm is the decay of delta as time passes, -dDelta/dT.
func (bs BlackScholes) Charm() float64 {
	sqrtT := math.Sqrt(bs.expiry)
	dd1 := (2*(bs.rate-bs.q)*bs.expiry - bs.d2()*bs.sigma*sqrtT) / (2 * bs.expiry * bs.sigma * sqrtT)
	decay := bs.carry() * normPDF(bs.d1()) * dd1
	if bs.kind == models.Call {
		return bs.q*bs.carry()*normCDF(bs.d1()) - decay
	}
	return -bs.q*bs.carry()*normCDF(-bs.d1()) - decay
}

// Epsilon (psi) is the sensitivity to the dividend yield.
func (bs BlackScholes) Epsilon() float64 {
	scale := bs.underlying * bs.expiry * bs.carry()
	if bs.kind == models.Call {
		return -scale * normCDF(bs.d1())
	}
	return scale * normCDF(-bs.d1())
}

func (bs BlackScholes) InTheMoney() float64 {
	if bs.kind == models.Call {
		return normCDF(bs.d2())
	}
	return normCDF(-bs.d2())
}
