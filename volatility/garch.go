package volatility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/optstruct/models"
)

// maxPersistence caps alpha+beta so the fitted process stays stationary.
const maxPersistence = 0.999

// GARCH11 holds the parameters of sigma²(t) = Omega + Alpha·r²(t-1) + Beta·sigma²(t-1).
type GARCH11 struct {
	Omega float64
	Alpha float64
	Beta  float64
}

func (g GARCH11) valid() bool {
	return g.Omega > 0 && g.Alpha >= 0 && g.Beta >= 0 && g.Alpha+g.Beta < 1
}

// filter runs the variance recursion from the sample variance and returns the
// one-step-ahead variance together with the Gaussian log-likelihood.
func (g GARCH11) filter(returns []float64) (next, logLik float64) {
	variance := stat.Variance(returns, nil)
	for i := 1; i < len(returns); i++ {
		variance = g.Omega + g.Alpha*returns[i-1]*returns[i-1] + g.Beta*variance
		logLik += -0.5*math.Log(2*math.Pi) - 0.5*math.Log(variance) - 0.5*returns[i]*returns[i]/variance
	}
	last := returns[len(returns)-1]
	return g.Omega + g.Alpha*last*last + g.Beta*variance, logLik
}

func (g GARCH11) LogLikelihood(returns []float64) float64 {
	_, ll := g.filter(returns)
	return ll
}

// Forecast is the next-period daily variance given the observed returns.
func (g GARCH11) Forecast(returns []float64) float64 {
	next, _ := g.filter(returns)
	return next
}

func logistic(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
func logit(p float64) float64    { return math.Log(p / (1 - p)) }

// fromUnconstrained maps an optimiser point onto valid parameters.
func fromUnconstrained(x []float64) GARCH11 {
	persistence := maxPersistence * logistic(x[1])
	alpha := persistence * logistic(x[2])
	return GARCH11{Omega: math.Exp(x[0]), Alpha: alpha, Beta: persistence - alpha}
}

// FitGARCH11 estimates parameters by maximum likelihood with Nelder-Mead.
// The search starts at alpha 0.1, beta 0.8 with omega matched to the sample
// variance, and falls back to that start if the optimiser fails.
func FitGARCH11(returns []float64) (GARCH11, error) {
	if len(returns) < 2 {
		return GARCH11{}, fmt.Errorf("garch needs at least 2 returns, got %d: %w", len(returns), models.ErrInvalidInput)
	}
	sampleVar := stat.Variance(returns, nil)
	if !(sampleVar > 0) {
		return GARCH11{}, fmt.Errorf("garch on returns with zero variance: %w", models.ErrInvalidInput)
	}

	start := GARCH11{Omega: sampleVar * 0.1, Alpha: 0.1, Beta: 0.8}
	x0 := []float64{
		math.Log(start.Omega),
		logit((start.Alpha + start.Beta) / maxPersistence),
		logit(start.Alpha / (start.Alpha + start.Beta)),
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			ll := fromUnconstrained(x).LogLikelihood(returns)
			if math.IsNaN(ll) || math.IsInf(ll, 0) {
				return math.Inf(1)
			}
			return -ll
		},
	}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil || result == nil {
		return start, nil
	}
	fit := fromUnconstrained(result.X)
	if !fit.valid() {
		return start, nil
	}
	return fit, nil
}

func logReturns(bars []Bar) []float64 {
	returns := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		returns[i-1] = math.Log(bars[i].Close / bars[i-1].Close)
	}
	return returns
}

func garchVariance(bars []Bar) (float64, error) {
	returns := logReturns(bars)
	g, err := FitGARCH11(returns)
	if err != nil {
		return 0, err
	}
	return g.Forecast(returns), nil
}
