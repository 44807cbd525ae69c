package pricing

import "gonum.org/v1/gonum/stat/distuv"

// normCDF calculates the cumulative distribution function of the standard normal distribution
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPDF calculates the probability density function of the standard normal distribution
func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
