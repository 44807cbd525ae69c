package models

import (
	"fmt"
	"strings"
)

// Measure identifies a quantity that can be evaluated on a contract and
// reduced linearly across the legs of a structure.
type Measure int

const (
	Price Measure = iota
	Delta
	Gamma
	Vega
	Theta
	Rho
	DualDelta
	Epsilon
	Charm
)

var measureNames = [...]string{
	Price:     "price",
	Delta:     "delta",
	Gamma:     "gamma",
	Vega:      "vega",
	Theta:     "theta",
	Rho:       "rho",
	DualDelta: "dual_delta",
	Epsilon:   "epsilon",
	Charm:     "charm",
}

// CoreMeasures are served by every contract regardless of model.
var CoreMeasures = []Measure{Price, Delta, Gamma, Vega, Theta, Rho}

func (m Measure) String() string {
	if m >= 0 && int(m) < len(measureNames) {
		return measureNames[m]
	}
	return fmt.Sprintf("Measure(%d)", int(m))
}

func ParseMeasure(s string) (Measure, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "psi" {
		return Epsilon, nil
	}
	for i, n := range measureNames {
		if n == name {
			return Measure(i), nil
		}
	}
	return 0, fmt.Errorf("measure %q: %w", s, ErrUnsupportedMeasure)
}
