// Package pricing holds closed-form European option contracts under the
// Black-Scholes (spot, dividend yield) and Black-76 (forward) conventions.
package pricing

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/optstruct/models"
)

// Contract is the capability set every priced leg exposes. All methods are
// pure functions of the contract's stored inputs.
type Contract interface {
	Kind() models.OptionKind
	Strike() float64
	Underlying() float64

	Price() float64
	Delta() float64
	Gamma() float64
	Vega() float64
	Theta() float64
	Rho() float64
	DualDelta() float64
	Charm() float64

	// InTheMoney is the risk-neutral probability of expiring in the money.
	InTheMoney() float64
	Payoff(terminal float64) float64
}

// DividendSensitive is implemented by contracts carrying an explicit dividend yield.
type DividendSensitive interface {
	Epsilon() float64
}

// Evaluate resolves a measure on a contract.
func Evaluate(c Contract, m models.Measure) (float64, error) {
	switch m {
	case models.Price:
		return c.Price(), nil
	case models.Delta:
		return c.Delta(), nil
	case models.Gamma:
		return c.Gamma(), nil
	case models.Vega:
		return c.Vega(), nil
	case models.Theta:
		return c.Theta(), nil
	case models.Rho:
		return c.Rho(), nil
	case models.DualDelta:
		return c.DualDelta(), nil
	case models.Charm:
		return c.Charm(), nil
	case models.Epsilon:
		if d, ok := c.(DividendSensitive); ok {
			return d.Epsilon(), nil
		}
		return 0, fmt.Errorf("%s on %T: %w", m, c, models.ErrUnsupportedMeasure)
	}
	return 0, fmt.Errorf("%s: %w", m, models.ErrUnsupportedMeasure)
}

// GreeksOf snapshots the price and core greeks of a contract.
func GreeksOf(c Contract) models.Greeks {
	return models.Greeks{
		Price: c.Price(),
		Delta: c.Delta(),
		Gamma: c.Gamma(),
		Vega:  c.Vega(),
		Theta: c.Theta(),
		Rho:   c.Rho(),
	}
}

func payoff(kind models.OptionKind, strike, terminal float64) float64 {
	if kind == models.Call {
		return math.Max(0, terminal-strike)
	}
	return math.Max(0, strike-terminal)
}

// market holds the inputs shared by both conventions.
type market struct {
	kind       models.OptionKind
	underlying float64
	strike     float64
	expiry     float64
	rate       float64
	sigma      float64
}

func (m market) Kind() models.OptionKind { return m.kind }
func (m market) Strike() float64         { return m.strike }
func (m market) Underlying() float64     { return m.underlying }

func (m market) Payoff(terminal float64) float64 {
	return payoff(m.kind, m.strike, terminal)
}

func (m market) discount() float64 {
	return math.Exp(-m.rate * m.expiry)
}

func (m market) volSqrtT() float64 {
	return m.sigma * math.Sqrt(m.expiry)
}

func validateMarket(underlyingField string, m market) error {
	if m.kind != models.Call && m.kind != models.Put {
		return fmt.Errorf("option kind %s: %w", m.kind, models.ErrInvalidInput)
	}
	checks := []struct {
		field string
		value float64
	}{
		{underlyingField, m.underlying},
		{"K", m.strike},
		{"T", m.expiry},
		{"sigma", m.sigma},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return models.NewInputError(c.field, c.value, "must be finite")
		}
		if c.value <= 0 {
			return models.NewInputError(c.field, c.value, "must be > 0")
		}
	}
	if math.IsNaN(m.rate) || math.IsInf(m.rate, 0) {
		return models.NewInputError("r", m.rate, "must be finite")
	}
	return nil
}
