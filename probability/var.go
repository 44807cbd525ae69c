package probability

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/optstruct/models"
)

// Payoffer is anything with a value at expiry, such as a positions.Structure.
type Payoffer interface {
	Payoff(terminal float64) float64
}

// Result summarises a structure held to expiry.
type Result struct {
	Paths               int     `json:"paths"`
	Premium             float64 `json:"premium"`
	ExpectedPayoff      float64 `json:"expected_payoff"`
	DiscountedValue     float64 `json:"discounted_value"`
	StandardError       float64 `json:"standard_error"`
	ProbabilityOfProfit float64 `json:"probability_of_profit"`
	VaR95               float64 `json:"var_95"`
	VaR99               float64 `json:"var_99"`
	ExpectedShortfall   float64 `json:"expected_shortfall"`
}

// Analyze evaluates p on every terminal price. premium is what was paid to
// open the position (negative for a credit); P&L is payoff minus premium.
func Analyze(p Payoffer, terminals []float64, premium float64, d Dynamics) (Result, error) {
	if len(terminals) == 0 {
		return Result{}, fmt.Errorf("no terminal prices: %w", models.ErrInvalidInput)
	}

	payoffs := make([]float64, len(terminals))
	losses := make([]float64, len(terminals))
	profitable := 0
	for i, st := range terminals {
		payoffs[i] = p.Payoff(st)
		pnl := payoffs[i] - premium
		losses[i] = -pnl
		if pnl > 0 {
			profitable++
		}
	}

	mean, std := stat.MeanStdDev(payoffs, nil)
	stdErr := 0.0
	if len(payoffs) > 1 {
		stdErr = std / math.Sqrt(float64(len(payoffs)))
	}

	sort.Float64s(losses)
	return Result{
		Paths:               len(terminals),
		Premium:             premium,
		ExpectedPayoff:      mean,
		DiscountedValue:     mean * d.Discount(),
		StandardError:       stdErr * d.Discount(),
		ProbabilityOfProfit: float64(profitable) / float64(len(terminals)),
		VaR95:               quantileLoss(losses, 0.95),
		VaR99:               quantileLoss(losses, 0.99),
		ExpectedShortfall:   expectedShortfall(losses, 0.95),
	}, nil
}

// CalculateVaR returns the loss exceeded with probability 1-confidence.
// losses need not be sorted.
func CalculateVaR(losses []float64, confidence float64) (float64, error) {
	if len(losses) == 0 {
		return 0, fmt.Errorf("no losses: %w", models.ErrInvalidInput)
	}
	if !(confidence > 0 && confidence < 1) {
		return 0, models.NewInputError("confidence", confidence, "must be in (0, 1)")
	}
	sorted := make([]float64, len(losses))
	copy(sorted, losses)
	sort.Float64s(sorted)
	return quantileLoss(sorted, confidence), nil
}

func quantileLoss(sorted []float64, confidence float64) float64 {
	return stat.Quantile(confidence, stat.Empirical, sorted, nil)
}

// expectedShortfall averages the losses at or beyond VaR.
func expectedShortfall(sorted []float64, confidence float64) float64 {
	v := quantileLoss(sorted, confidence)
	idx := sort.SearchFloat64s(sorted, v)
	return stat.Mean(sorted[idx:], nil)
}
