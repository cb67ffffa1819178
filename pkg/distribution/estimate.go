package distribution

import (
	"errors"
	"math"
)

// ErrNoObservations is returned when no usable time-to-fault samples remain.
var ErrNoObservations = errors.New("no positive time-to-fault observations")

// EstimateExponential returns the maximum-likelihood exponential law for a
// set of observed times to fault: rate = n / sum(t). NaN, infinite and
// negative samples are skipped, as are gaps in field data.
func EstimateExponential(samples []float64) (Spec, error) {
	n := 0
	total := 0.0
	for _, t := range samples {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			continue
		}
		n++
		total += t
	}
	if n == 0 || total <= 0 {
		return Spec{}, ErrNoObservations
	}
	return Exp(float64(n) / total), nil
}
