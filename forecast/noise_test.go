package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise_Reproducible(t *testing.T) {
	a := DefaultNoise.Draw(8)
	b := DefaultNoise.Draw(8)
	require.Len(t, a, 8)
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "draw %d", i)
	}
}

func TestNoise_FreshStreamPerCall(t *testing.T) {
	short := DefaultNoise.Draw(3)
	long := DefaultNoise.Draw(10)

	assert.Len(t, long, 10)
	assert.Equal(t, short, long[:3])
}

func TestNoise_Apply(t *testing.T) {
	values := []float64{100, 200, 300}
	noisy := DefaultNoise.Apply(values)
	draws := DefaultNoise.Draw(3)

	require.Len(t, noisy, 3)
	for i := range values {
		assert.Equal(t, values[i]+draws[i], noisy[i])
	}
	assert.Equal(t, []float64{100, 200, 300}, values, "input must not change")
	assert.Empty(t, DefaultNoise.Apply(nil))
}

func TestNoise_Distribution(t *testing.T) {
	draws := DefaultNoise.Draw(20000)

	mean := 0.0
	for _, v := range draws {
		mean += v
	}
	mean /= float64(len(draws))

	variance := 0.0
	for _, v := range draws {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(draws)-1))

	assert.InDelta(t, 0, mean, 0.5)
	assert.InDelta(t, 10, std, 0.5)
}

func TestNoise_Seed(t *testing.T) {
	other := Noise{Mean: 0, Scale: 10, Seed: 1}
	assert.NotEqual(t, DefaultNoise.Draw(4), other.Draw(4))

	shifted := Noise{Mean: 5, Scale: 0, Seed: 0}
	assert.Equal(t, []float64{5, 5}, shifted.Draw(2))
}
