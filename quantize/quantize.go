package quantize

import (
	"math"

	"github.com/jsphweid/scoreclean/constants"
)

// Quantize snaps value to the nearest multiple of grid. Ties round to the
// even multiple, so 0.25 on a 0.5 grid lands on 0.
func Quantize(value float64, grid float64) float64 {
	return math.RoundToEven(value/grid) * grid
}

// GridFor returns the grid unit used when the caller only says whether
// rhythms should be simplified.
func GridFor(simplify bool) float64 {
	if simplify {
		return constants.SimplifiedGrid
	}
	return constants.DetailedGrid
}

// OnGrid reports whether value is a multiple of grid within tolerance.
func OnGrid(value float64, grid float64) bool {
	steps := value / grid
	return math.Abs(steps-math.Round(steps)) < 1e-9
}
