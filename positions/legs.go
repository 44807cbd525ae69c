package positions

import (
	"github.com/bcdannyboy/optstruct/models"
	"github.com/bcdannyboy/optstruct/pricing"
)

// LegFactory builds one validated contract for a strike under market inputs
// that are shared by every leg of a structure.
type LegFactory interface {
	Model() models.Model
	Leg(kind models.OptionKind, strike float64) (pricing.Contract, error)
}

type blackScholesLegs struct {
	S, T, r, sigma, q float64
}

// BlackScholesLegs prices legs on spot S with dividend yield q.
func BlackScholesLegs(S, T, r, sigma, q float64) LegFactory {
	return blackScholesLegs{S: S, T: T, r: r, sigma: sigma, q: q}
}

func (f blackScholesLegs) Model() models.Model { return models.BlackScholes }

func (f blackScholesLegs) Leg(kind models.OptionKind, strike float64) (pricing.Contract, error) {
	c, err := pricing.NewBlackScholes(kind, f.S, strike, f.T, f.r, f.sigma, f.q)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type black76Legs struct {
	F, T, r, sigma float64
}

// Black76Legs prices legs on forward F.
func Black76Legs(F, T, r, sigma float64) LegFactory {
	return black76Legs{F: F, T: T, r: r, sigma: sigma}
}

func (f black76Legs) Model() models.Model { return models.Black76 }

func (f black76Legs) Leg(kind models.OptionKind, strike float64) (pricing.Contract, error) {
	c, err := pricing.NewBlack76(kind, f.F, strike, f.T, f.r, f.sigma)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type legSpec struct {
	kind   models.OptionKind
	strike float64
	weight int
}

// build constructs every leg or none.
func build(kind models.StructureKind, f LegFactory, specs []legSpec) (*Structure, error) {
	contracts := make([]pricing.Contract, len(specs))
	weights := make([]int, len(specs))
	for i, spec := range specs {
		c, err := f.Leg(spec.kind, spec.strike)
		if err != nil {
			return nil, err
		}
		contracts[i] = c
		weights[i] = spec.weight
	}
	return NewStructure(kind, contracts, weights)
}
