package positions

import (
	"fmt"

	"github.com/bcdannyboy/optstruct/models"
	"github.com/bcdannyboy/optstruct/pricing"
)

// Leg is one weighted contract inside a structure.
type Leg struct {
	Contract pricing.Contract
	Weight   int
}

// Structure is a fixed linear combination of option legs. Every measure of a
// structure is sum(weight_i * measure(leg_i)).
type Structure struct {
	kind models.StructureKind
	legs []Leg
}

// NewStructure pairs contracts with their weights. The structure takes
// ownership of the contracts; the slices are copied.
func NewStructure(kind models.StructureKind, contracts []pricing.Contract, weights []int) (*Structure, error) {
	if len(contracts) != len(weights) {
		return nil, fmt.Errorf("%s: %d legs but %d weights: %w", kind, len(contracts), len(weights), models.ErrInvalidInput)
	}
	if len(contracts) == 0 {
		return nil, fmt.Errorf("%s: no legs: %w", kind, models.ErrInvalidInput)
	}
	legs := make([]Leg, len(contracts))
	for i, c := range contracts {
		if c == nil {
			return nil, fmt.Errorf("%s: leg %d is nil: %w", kind, i, models.ErrInvalidInput)
		}
		legs[i] = Leg{Contract: c, Weight: weights[i]}
	}
	return &Structure{kind: kind, legs: legs}, nil
}

func (s *Structure) Kind() models.StructureKind { return s.kind }

func (s *Structure) Legs() []Leg {
	out := make([]Leg, len(s.legs))
	copy(out, s.legs)
	return out
}

func (s *Structure) Strikes() []float64 {
	strikes := make([]float64, len(s.legs))
	for i, l := range s.legs {
		strikes[i] = l.Contract.Strike()
	}
	return strikes
}

func (s *Structure) Weights() []int {
	weights := make([]int, len(s.legs))
	for i, l := range s.legs {
		weights[i] = l.Weight
	}
	return weights
}

// Evaluate reduces any measure across the legs. It fails with
// models.ErrUnsupportedMeasure when a leg cannot serve the measure.
func (s *Structure) Evaluate(m models.Measure) (float64, error) {
	total := 0.0
	for i, l := range s.legs {
		v, err := pricing.Evaluate(l.Contract, m)
		if err != nil {
			return 0, fmt.Errorf("%s leg %d: %w", s.kind, i, err)
		}
		total += float64(l.Weight) * v
	}
	return total, nil
}

func (s *Structure) reduce(f func(pricing.Contract) float64) float64 {
	total := 0.0
	for _, l := range s.legs {
		total += float64(l.Weight) * f(l.Contract)
	}
	return total
}

func (s *Structure) Price() float64     { return s.reduce(pricing.Contract.Price) }
func (s *Structure) Delta() float64     { return s.reduce(pricing.Contract.Delta) }
func (s *Structure) Gamma() float64     { return s.reduce(pricing.Contract.Gamma) }
func (s *Structure) Vega() float64      { return s.reduce(pricing.Contract.Vega) }
func (s *Structure) Theta() float64     { return s.reduce(pricing.Contract.Theta) }
func (s *Structure) Rho() float64       { return s.reduce(pricing.Contract.Rho) }
func (s *Structure) DualDelta() float64 { return s.reduce(pricing.Contract.DualDelta) }
func (s *Structure) Charm() float64     { return s.reduce(pricing.Contract.Charm) }

// Payoff is the structure's value at expiry for a terminal underlying price.
func (s *Structure) Payoff(terminal float64) float64 {
	return s.reduce(func(c pricing.Contract) float64 { return c.Payoff(terminal) })
}

func (s *Structure) Greeks() models.Greeks {
	return models.Greeks{
		Price: s.Price(),
		Delta: s.Delta(),
		Gamma: s.Gamma(),
		Vega:  s.Vega(),
		Theta: s.Theta(),
		Rho:   s.Rho(),
	}
}
