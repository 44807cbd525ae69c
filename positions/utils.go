package positions

import (
	"fmt"
	"math"
	"time"

	"github.com/bcdannyboy/optstruct/models"
)

// IntrinsicValue is the structure's payoff if it expired at the legs' current
// underlying price.
func IntrinsicValue(s *Structure) float64 {
	legs := s.Legs()
	return s.Payoff(legs[0].Contract.Underlying())
}

// ExtrinsicValue is the model price less intrinsic value.
func ExtrinsicValue(s *Structure) float64 {
	return s.Price() - IntrinsicValue(s)
}

// TimeToMaturity converts a YYYY-MM-DD expiration into years from now using a
// 365 day year. Expirations at or before now are rejected.
func TimeToMaturity(expirationDate string, now time.Time) (float64, error) {
	expDate, err := time.Parse("2006-01-02", expirationDate)
	if err != nil {
		return 0, fmt.Errorf("parse expiration %q: %w", expirationDate, models.ErrInvalidInput)
	}
	years := expDate.Sub(now).Hours() / 24 / 365
	if years <= 0 || math.IsNaN(years) {
		return 0, models.NewInputError("T", years, "expiration must be in the future")
	}
	return years, nil
}
