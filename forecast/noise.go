package forecast

import "math/rand"

// Noise adds normally distributed perturbation to forecasts for display.
// Every call starts a fresh stream from Seed, so equal inputs give
// bit-identical outputs.
type Noise struct {
	Mean  float64
	Scale float64
	Seed  int64
}

// DefaultNoise is N(0, 10) seeded with 0.
var DefaultNoise = Noise{Mean: 0, Scale: 10, Seed: 0}

// Draw returns the first count samples of the stream.
func (nz Noise) Draw(count int) []float64 {
	if count <= 0 {
		return []float64{}
	}
	rng := rand.New(rand.NewSource(nz.Seed))
	out := make([]float64, count)
	for i := range out {
		out[i] = nz.Mean + nz.Scale*rng.NormFloat64()
	}
	return out
}

// Apply returns values with one sample added to each element. The number of
// draws always equals len(values).
func (nz Noise) Apply(values []float64) []float64 {
	noise := nz.Draw(len(values))
	for i, v := range values {
		noise[i] += v
	}
	return noise
}
