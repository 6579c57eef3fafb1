package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// clipFactor returns the multiplier that caps the global L2 norm of the
// gradient set at maxNorm. The factor is folded into the step size instead
// of scaling the gradients themselves, which stay read-only to the
// optimizer. maxNorm <= 0 disables clipping.
func clipFactor(maxNorm float64, grads []Tensor) float64 {
	if maxNorm <= 0 {
		return 1.0
	}
	sumSq := 0.0
	for _, g := range grads {
		d := g.Data()
		sumSq += floats.Dot(d, d)
	}
	norm := math.Sqrt(sumSq)
	if norm <= maxNorm {
		return 1.0
	}
	return maxNorm / norm
}
