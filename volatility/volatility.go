// Package volatility estimates annualised historical volatility from daily
// OHLC bars, for use as the sigma input of a pricer.
package volatility

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/optstruct/models"
)

// TradingDays per year used to annualise daily variance.
const TradingDays = 252

type Bar struct {
	Date  string  `csv:"date"`
	Open  float64 `csv:"open"`
	High  float64 `csv:"high"`
	Low   float64 `csv:"low"`
	Close float64 `csv:"close"`
}

func (b Bar) validate() error {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("bar %s: prices must be positive and finite: %w", b.Date, models.ErrInvalidInput)
		}
	}
	if b.High < b.Low || b.High < math.Max(b.Open, b.Close) || b.Low > math.Min(b.Open, b.Close) {
		return fmt.Errorf("bar %s: high/low do not bracket open/close: %w", b.Date, models.ErrInvalidInput)
	}
	return nil
}

// ReadBars parses a CSV with a date,open,high,low,close header, oldest first.
func ReadBars(r io.Reader) ([]Bar, error) {
	var bars []Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return nil, fmt.Errorf("read bars: %w", err)
	}
	for _, b := range bars {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	return bars, nil
}

// Method is a historical volatility estimator.
type Method int

const (
	CloseToClose Method = iota
	Parkinson
	GarmanKlass
	RogersSatchell
	YangZhang
	GARCH
)

var methodNames = [...]string{
	CloseToClose:   "close-to-close",
	Parkinson:      "parkinson",
	GarmanKlass:    "garman-klass",
	RogersSatchell: "rogers-satchell",
	YangZhang:      "yang-zhang",
	GARCH:          "garch",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown volatility method %q: %w", s, models.ErrInvalidInput)
}

// minBars is the smallest sample each method can work with.
func (m Method) minBars() int {
	switch m {
	case CloseToClose:
		return 3
	case YangZhang:
		return 2
	case GARCH:
		return 30
	default:
		return 1
	}
}

// Estimate returns the annualised volatility of bars under method m.
func Estimate(m Method, bars []Bar) (float64, error) {
	if len(bars) < m.minBars() {
		return 0, fmt.Errorf("%s needs at least %d bars, got %d: %w", m, m.minBars(), len(bars), models.ErrInvalidInput)
	}

	var daily float64
	switch m {
	case CloseToClose:
		daily = closeToCloseVariance(bars)
	case Parkinson:
		daily = parkinsonVariance(bars)
	case GarmanKlass:
		daily = garmanKlassVariance(bars)
	case RogersSatchell:
		daily = rogersSatchellVariance(bars)
	case YangZhang:
		daily = yangZhangVariance(bars)
	case GARCH:
		var err error
		if daily, err = garchVariance(bars); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("volatility method %d: %w", int(m), models.ErrInvalidInput)
	}

	if daily < 0 || math.IsNaN(daily) {
		return 0, fmt.Errorf("%s variance %g is not usable: %w", m, daily, models.ErrInvalidInput)
	}
	return math.Sqrt(daily * TradingDays), nil
}

// Periods are the lookback windows reported by Term, in trading days.
var Periods = []struct {
	Name string
	Days int
}{
	{"1w", 5},
	{"1m", 21},
	{"3m", 63},
	{"6m", 126},
	{"1y", 252},
}

// Window returns the most recent days bars.
func Window(bars []Bar, days int) ([]Bar, error) {
	if days <= 0 || days > len(bars) {
		return nil, fmt.Errorf("window of %d days over %d bars: %w", days, len(bars), models.ErrInvalidInput)
	}
	return bars[len(bars)-days:], nil
}

// Term estimates every period in Periods that the history is long enough for.
func Term(m Method, bars []Bar) map[string]float64 {
	results := make(map[string]float64)
	for _, p := range Periods {
		w, err := Window(bars, p.Days)
		if err != nil {
			continue
		}
		if v, err := Estimate(m, w); err == nil && v != 0 {
			results[p.Name] = v
		}
	}
	return results
}

func closeToCloseVariance(bars []Bar) float64 {
	return stat.Variance(logReturns(bars), nil)
}

func parkinsonVariance(bars []Bar) float64 {
	sum := 0.0
	for _, b := range bars {
		hl := math.Log(b.High / b.Low)
		sum += hl * hl
	}
	return sum / (4 * float64(len(bars)) * math.Ln2)
}

func garmanKlassVariance(bars []Bar) float64 {
	sum := 0.0
	for _, b := range bars {
		hl := math.Log(b.High / b.Low)
		co := math.Log(b.Close / b.Open)
		sum += 0.5*hl*hl - (2*math.Ln2-1)*co*co
	}
	return sum / float64(len(bars))
}

func rogersSatchellVariance(bars []Bar) float64 {
	sum := 0.0
	for _, b := range bars {
		sum += math.Log(b.High/b.Close)*math.Log(b.High/b.Open) +
			math.Log(b.Low/b.Close)*math.Log(b.Low/b.Open)
	}
	return sum / float64(len(bars))
}

// yangZhangVariance combines overnight, open-to-close and Rogers-Satchell
// variance. The first bar only contributes its open-to-close leg.
func yangZhangVariance(bars []Bar) float64 {
	n := float64(len(bars))
	k := 0.34 / (1.34 + (n+1)/(n-1))

	overnight := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		overnight[i-1] = math.Log(bars[i].Open / bars[i-1].Close)
	}
	openClose := make([]float64, len(bars))
	for i, b := range bars {
		openClose[i] = math.Log(b.Close / b.Open)
	}

	var overnightVar float64
	if len(overnight) > 1 {
		overnightVar = stat.Variance(overnight, nil)
	} else {
		overnightVar = overnight[0] * overnight[0]
	}
	return overnightVar + k*stat.Variance(openClose, nil) + (1-k)*rogersSatchellVariance(bars)
}
