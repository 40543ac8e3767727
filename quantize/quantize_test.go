package quantize

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		value    float64
		grid     float64
		expected float64
	}{
		{0, 0.5, 0},
		{0.05, 0.5, 0},
		{0.3, 0.5, 0.5},
		{0.9, 0.5, 1.0},
		{1.1, 0.25, 1.0},
		{1.13, 0.25, 1.25},
		{0.25, 0.5, 0},
		{0.75, 0.5, 1.0},
		{3.0, 0.5, 3.0},
	}

	for _, c := range cases {
		name := fmt.Sprintf("quantize %v to grid %v", c.value, c.grid)
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, c.expected, Quantize(c.value, c.grid), 1e-9)
		})
	}
}

func TestQuantizeIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, grid := range []float64{0.25, 0.5, 1.0 / 3.0} {
		for i := 0; i < 500; i++ {
			x := r.Float64() * 64
			once := Quantize(x, grid)
			assert.Equal(t, once, Quantize(once, grid))
			assert.True(t, OnGrid(once, grid))
		}
	}
}

func TestGridFor(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.5, GridFor(true))
	assert.Equal(0.25, GridFor(false))
}

func TestOnGrid(t *testing.T) {
	assert := assert.New(t)
	assert.True(OnGrid(1.5, 0.5))
	assert.True(OnGrid(0, 0.25))
	assert.False(OnGrid(0.3, 0.25))
}
