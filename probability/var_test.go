package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/optstruct/models"
)

type fixedPayoff map[float64]float64

func (f fixedPayoff) Payoff(terminal float64) float64 { return f[terminal] }

func TestCalculateVaR(t *testing.T) {
	losses := []float64{5, -1, 3, 10, 0, -4, 2, 8, 1, -2}

	v, err := CalculateVaR(losses, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)

	v, err = CalculateVaR(losses, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	// input order is left alone
	assert.Equal(t, 5.0, losses[0])

	_, err = CalculateVaR(nil, 0.95)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = CalculateVaR(losses, 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestAnalyzeCountsProfitAndLoss(t *testing.T) {
	p := fixedPayoff{1: 0, 2: 0, 3: 4, 4: 10}
	d := Black76Dynamics(3, 1, 0, 0.2)

	res, err := Analyze(p, []float64{1, 2, 3, 4}, 2, d)
	require.NoError(t, err)

	assert.Equal(t, 3.5, res.ExpectedPayoff)
	assert.Equal(t, 3.5, res.DiscountedValue)
	assert.Equal(t, 0.5, res.ProbabilityOfProfit)
	assert.Equal(t, 2.0, res.VaR95)
	assert.Equal(t, 2.0, res.ExpectedShortfall)

	_, err = Analyze(p, nil, 0, d)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
