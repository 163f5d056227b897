package encode

import "math"

// Scaler standardizes columns to zero mean and unit variance. Variance is the
// population variance; constant columns get a scale of 1 so they map to 0.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per-column statistics over all rows. Rows must share a
// length.
func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	cols := len(rows[0])
	mean := make([]float64, cols)
	for _, r := range rows {
		for j, x := range r {
			mean[j] += x
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}

	scale := make([]float64, cols)
	for _, r := range rows {
		for j, x := range r {
			d := x - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		variance := scale[j] / n
		if nearConstant(variance, mean[j], n) {
			scale[j] = 1
			continue
		}
		scale[j] = math.Sqrt(variance)
	}
	return &Scaler{Mean: mean, Scale: scale}
}

// Transform returns standardized copies of the rows.
func (s *Scaler) Transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		o := make([]float64, len(r))
		for j, x := range r {
			o[j] = (x - s.Mean[j]) / s.Scale[j]
		}
		out[i] = o
	}
	return out
}

// nearConstant reports whether a column's variance is within the rounding
// error of summing n copies of its mean, so a column holding one repeated
// value is treated as constant.
func nearConstant(variance, mean, n float64) bool {
	const eps = 0x1p-52
	bound := n*eps*variance + (n*mean*eps)*(n*mean*eps)
	return variance <= bound
}
