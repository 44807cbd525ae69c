package positions

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/optstruct/models"
)

func validateVerticalStrikes(low, high float64) error {
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return models.NewStrikeError("must be finite", low, high)
	}
	if !(low < high) {
		return models.NewStrikeError("must satisfy low < high", low, high)
	}
	return nil
}

// NewBullPutSpread is the credit spread long Put(low), short Put(high).
func NewBullPutSpread(legs LegFactory, low, high float64) (*Structure, error) {
	if err := validateVerticalStrikes(low, high); err != nil {
		return nil, err
	}
	return build(models.BullPut, legs, []legSpec{
		{models.Put, low, 1},
		{models.Put, high, -1},
	})
}

// NewBearCallSpread is the credit spread short Call(low), long Call(high).
func NewBearCallSpread(legs LegFactory, low, high float64) (*Structure, error) {
	if err := validateVerticalStrikes(low, high); err != nil {
		return nil, err
	}
	return build(models.BearCall, legs, []legSpec{
		{models.Call, low, -1},
		{models.Call, high, 1},
	})
}

// NewStraddle is long Call(K) plus long Put(K).
func NewStraddle(legs LegFactory, K float64) (*Structure, error) {
	return build(models.Straddle, legs, []legSpec{
		{models.Call, K, 1},
		{models.Put, K, 1},
	})
}

// ReturnOnRisk is the credit received over the maximum loss of a vertical
// credit spread at model value. It is zero when the spread is not a credit.
func ReturnOnRisk(s *Structure) (float64, error) {
	if s.Kind() != models.BullPut && s.Kind() != models.BearCall {
		return 0, fmt.Errorf("return on risk for %s: %w", s.Kind(), models.ErrInvalidInput)
	}
	strikes := s.Strikes()
	width := math.Abs(strikes[1] - strikes[0])
	credit := -s.Price()
	maxRisk := width - credit
	if credit <= 0 || maxRisk <= 0 {
		return 0, nil
	}
	return credit / maxRisk, nil
}

// Shape names accepted by Build.
const (
	ShapeButterflyLong  = "butterfly-long"
	ShapeButterflyShort = "butterfly-short"
	ShapeBullPut        = "bull-put"
	ShapeBearCall       = "bear-call"
	ShapeStraddle       = "straddle"
)

var shapeArity = map[string]int{
	ShapeButterflyLong:  3,
	ShapeButterflyShort: 3,
	ShapeBullPut:        2,
	ShapeBearCall:       2,
	ShapeStraddle:       1,
}

// Shapes lists the names accepted by Build.
func Shapes() []string {
	return []string{ShapeButterflyLong, ShapeButterflyShort, ShapeBullPut, ShapeBearCall, ShapeStraddle}
}

// Build constructs a structure by shape name from ascending strikes.
func Build(shape string, legs LegFactory, strikes []float64) (*Structure, error) {
	n, ok := shapeArity[shape]
	if !ok {
		return nil, fmt.Errorf("unknown structure shape %q: %w", shape, models.ErrInvalidInput)
	}
	if len(strikes) != n {
		return nil, fmt.Errorf("%s takes %d strikes, got %d: %w", shape, n, len(strikes), models.ErrInvalidStrikes)
	}
	switch shape {
	case ShapeButterflyLong:
		return NewButterflyLong(legs, strikes[0], strikes[1], strikes[2])
	case ShapeButterflyShort:
		return NewButterflyShort(legs, strikes[0], strikes[1], strikes[2])
	case ShapeBullPut:
		return NewBullPutSpread(legs, strikes[0], strikes[1])
	case ShapeBearCall:
		return NewBearCallSpread(legs, strikes[0], strikes[1])
	default:
		return NewStraddle(legs, strikes[0])
	}
}
