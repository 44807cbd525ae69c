package probability

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/optstruct/models"
)

const progressBatch = 1000

// Dynamics describes lognormal terminal prices under the pricing measure.
type Dynamics struct {
	Start      float64 // spot or forward today
	Drift      float64 // r - q on spot, 0 on a forward
	Volatility float64
	Expiry     float64 // years
	Rate       float64 // discounting
}

func BlackScholesDynamics(S, T, r, q, sigma float64) Dynamics {
	return Dynamics{Start: S, Drift: r - q, Volatility: sigma, Expiry: T, Rate: r}
}

func Black76Dynamics(F, T, r, sigma float64) Dynamics {
	return Dynamics{Start: F, Drift: 0, Volatility: sigma, Expiry: T, Rate: r}
}

func (d Dynamics) validate() error {
	switch {
	case !(d.Start > 0):
		return models.NewInputError("start", d.Start, "must be > 0")
	case !(d.Volatility > 0):
		return models.NewInputError("sigma", d.Volatility, "must be > 0")
	case !(d.Expiry > 0):
		return models.NewInputError("T", d.Expiry, "must be > 0")
	case math.IsNaN(d.Drift) || math.IsNaN(d.Rate):
		return models.NewInputError("rate", d.Rate, "must be finite")
	}
	return nil
}

// Discount is the factor applied to expected payoffs.
func (d Dynamics) Discount() float64 {
	return math.Exp(-d.Rate * d.Expiry)
}

// SimulateTerminalPrices draws terminal prices in one exact GBM step. progress,
// when set, is called with the number of completed paths every batch.
func SimulateTerminalPrices(d Dynamics, paths int, rng *rand.Rand, progress func(done int)) ([]float64, error) {
	if paths <= 0 {
		return nil, fmt.Errorf("paths %d: %w", paths, models.ErrInvalidInput)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	drift := (d.Drift - 0.5*d.Volatility*d.Volatility) * d.Expiry
	diffusion := d.Volatility * math.Sqrt(d.Expiry)

	prices := make([]float64, paths)
	for i := range prices {
		z := rng.NormFloat64()
		prices[i] = d.Start * math.Exp(drift+diffusion*z)
		if progress != nil && ((i+1)%progressBatch == 0 || i+1 == paths) {
			progress(i + 1)
		}
	}
	return prices, nil
}
