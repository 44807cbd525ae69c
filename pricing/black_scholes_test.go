package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/optstruct/models"
)

const equalityThreshold = 1e-3

func mustBS(t *testing.T, kind models.OptionKind, S, K, T, r, sigma, q float64) BlackScholes {
	t.Helper()
	c, err := NewBlackScholes(kind, S, K, T, r, sigma, q)
	require.NoError(t, err)
	return c
}

func TestBlackScholesReferenceValues(t *testing.T) {
	call := mustBS(t, models.Call, 100, 100, 1, 0.05, 0.2, 0)
	put := mustBS(t, models.Put, 100, 100, 1, 0.05, 0.2, 0)

	assert.InDelta(t, 10.4506, call.Price(), equalityThreshold)
	assert.InDelta(t, 5.5735, put.Price(), equalityThreshold)

	assert.InDelta(t, 0.636831, call.Delta(), 1e-6)
	assert.InDelta(t, -0.363169, put.Delta(), 1e-6)
	assert.InDelta(t, 0.018762, call.Gamma(), 1e-6)
	assert.InDelta(t, 37.524035, call.Vega(), 1e-5)
	assert.InDelta(t, -6.414028, call.Theta(), 1e-5)
	assert.InDelta(t, -1.657880, put.Theta(), 1e-5)
	assert.InDelta(t, 53.232482, call.Rho(), 1e-5)
	assert.InDelta(t, -41.890461, put.Rho(), 1e-5)
}

func TestBlackScholesWithDividendYield(t *testing.T) {
	call, err := NewBlackScholesCall(100, 95, 0.5, 0.03, 0.25, WithDividendYield(0.02))
	require.NoError(t, err)

	assert.Equal(t, 0.02, call.DividendYield())
	assert.InDelta(t, 9.831949, call.Price(), 1e-5)
	assert.InDelta(t, 0.651388, call.Delta(), 1e-6)
	assert.InDelta(t, -6.784072, call.Theta(), 1e-5)
	assert.InDelta(t, 27.653401, call.Rho(), 1e-5)

	noDiv, err := NewBlackScholesCall(100, 95, 0.5, 0.03, 0.25)
	require.NoError(t, err)
	assert.Zero(t, noDiv.DividendYield())
}

// marketGrid draws valid inputs spanning deep in and out of the money, low
// vol and long expiries.
func marketGrid(n int, seed uint64) [][6]float64 {
	rng := rand.New(rand.NewSource(seed))
	uniform := func(lo, hi float64) float64 { return lo + (hi-lo)*rng.Float64() }
	grid := make([][6]float64, n)
	for i := range grid {
		S := uniform(1, 2000)
		grid[i] = [6]float64{
			S,
			S * math.Exp(uniform(-1.5, 1.5)),
			uniform(0.01, 5),
			uniform(-0.02, 0.15),
			uniform(0.005, 1.5),
			uniform(0, 0.1),
		}
	}
	return grid
}

func TestBlackScholesPutCallParity(t *testing.T) {
	for _, g := range marketGrid(20000, 42) {
		S, K, T, r, sigma, q := g[0], g[1], g[2], g[3], g[4], g[5]
		call := mustBS(t, models.Call, S, K, T, r, sigma, q)
		put := mustBS(t, models.Put, S, K, T, r, sigma, q)

		require.GreaterOrEqual(t, call.Price(), 0.0, "%v", g)
		require.GreaterOrEqual(t, put.Price(), 0.0, "%v", g)

		lhs := call.Price() - put.Price()
		rhs := S*math.Exp(-q*T) - K*math.Exp(-r*T)
		require.InDelta(t, rhs, lhs, 1e-9*math.Max(S, K), "%v", g)

		carry := math.Exp(-q * T)
		require.GreaterOrEqual(t, call.Delta(), 0.0)
		require.LessOrEqual(t, call.Delta(), carry)
		require.GreaterOrEqual(t, put.Delta(), -carry)
		require.LessOrEqual(t, put.Delta(), 0.0)

		require.Equal(t, call.Gamma(), put.Gamma())
		require.Equal(t, call.Vega(), put.Vega())
	}
}

func TestBlackScholesDeepOutOfTheMoneyPriceIsZero(t *testing.T) {
	call := mustBS(t, models.Call, 489.93, 1537.42, 4.06, 0.12, 0.0128, 0.081)
	assert.GreaterOrEqual(t, call.Price(), 0.0)
	assert.InDelta(t, 0.0, call.Price(), 1e-300)
}

func TestBlackScholesGreeksMatchBumpedPrices(t *testing.T) {
	const h = 1e-5
	for _, kind := range []models.OptionKind{models.Call, models.Put} {
		base := mustBS(t, kind, 100, 95, 0.5, 0.03, 0.25, 0.02)
		bump := func(S, K, T, r, sigma, q float64) float64 {
			return mustBS(t, kind, S, K, T, r, sigma, q).Price()
		}

		delta := (bump(100+h, 95, 0.5, 0.03, 0.25, 0.02) - bump(100-h, 95, 0.5, 0.03, 0.25, 0.02)) / (2 * h)
		vega := (bump(100, 95, 0.5, 0.03, 0.25+h, 0.02) - bump(100, 95, 0.5, 0.03, 0.25-h, 0.02)) / (2 * h)
		theta := -(bump(100, 95, 0.5+h, 0.03, 0.25, 0.02) - bump(100, 95, 0.5-h, 0.03, 0.25, 0.02)) / (2 * h)
		rho := (bump(100, 95, 0.5, 0.03+h, 0.25, 0.02) - bump(100, 95, 0.5, 0.03-h, 0.25, 0.02)) / (2 * h)
		dual := (bump(100, 95+h, 0.5, 0.03, 0.25, 0.02) - bump(100, 95-h, 0.5, 0.03, 0.25, 0.02)) / (2 * h)
		eps := (bump(100, 95, 0.5, 0.03, 0.25, 0.02+h) - bump(100, 95, 0.5, 0.03, 0.25, 0.02-h)) / (2 * h)
		charm := -(mustBS(t, kind, 100, 95, 0.5+h, 0.03, 0.25, 0.02).Delta() - mustBS(t, kind, 100, 95, 0.5-h, 0.03, 0.25, 0.02).Delta()) / (2 * h)

		assert.InDelta(t, delta, base.Delta(), 1e-4, kind.String())
		assert.InDelta(t, vega, base.Vega(), 1e-4, kind.String())
		assert.InDelta(t, theta, base.Theta(), 1e-4, kind.String())
		assert.InDelta(t, rho, base.Rho(), 1e-4, kind.String())
		assert.InDelta(t, dual, base.DualDelta(), 1e-4, kind.String())
		assert.InDelta(t, eps, base.Epsilon(), 1e-4, kind.String())
		assert.InDelta(t, charm, base.Charm(), 1e-5, kind.String())
	}
}

func TestBlackScholesInTheMoney(t *testing.T) {
	call := mustBS(t, models.Call, 100, 100, 1, 0.05, 0.2, 0)
	put := mustBS(t, models.Put, 100, 100, 1, 0.05, 0.2, 0)

	assert.InDelta(t, 1.0, call.InTheMoney()+put.InTheMoney(), 1e-12)
	assert.Greater(t, call.InTheMoney(), 0.5)
}

func TestBlackScholesValidation(t *testing.T) {
	cases := []struct {
		name                 string
		S, K, T, r, sigma, q float64
		field                string
	}{
		{"zero expiry", 100, 100, 0, 0.05, 0.2, 0, "T"},
		{"negative expiry", 100, 100, -1, 0.05, 0.2, 0, "T"},
		{"zero vol", 100, 100, 1, 0.05, 0, 0, "sigma"},
		{"negative vol", 100, 100, 1, 0.05, -0.2, 0, "sigma"},
		{"zero spot", 0, 100, 1, 0.05, 0.2, 0, "S"},
		{"negative strike", 100, -5, 1, 0.05, 0.2, 0, "K"},
		{"nan rate", 100, 100, 1, math.NaN(), 0.2, 0, "r"},
		{"inf dividend", 100, 100, 1, 0.05, 0.2, math.Inf(1), "q"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewBlackScholes(models.Call, c.S, c.K, c.T, c.r, c.sigma, c.q)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, c.field, verr.Field)
		})
	}

	_, err := NewBlackScholes(models.OptionKind(7), 100, 100, 1, 0.05, 0.2, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPayoff(t *testing.T) {
	call := mustBS(t, models.Call, 100, 100, 1, 0.05, 0.2, 0)
	put := mustBS(t, models.Put, 100, 100, 1, 0.05, 0.2, 0)

	assert.Equal(t, 15.0, call.Payoff(115))
	assert.Equal(t, 0.0, call.Payoff(85))
	assert.Equal(t, 0.0, put.Payoff(115))
	assert.Equal(t, 15.0, put.Payoff(85))
}
