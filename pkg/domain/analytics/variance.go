package analytics

import "math/rand/v2"

// Demand variance range. The random multiplier models what-if demand
// spread; dropping it would silently narrow the forecast.
const (
	varianceMin = 0.8
	varianceMax = 1.2
)

// VarianceSource supplies the demand variance multiplier for one
// forecast month. The capacity forecaster is the only non-deterministic
// module, so the source is injectable: production uses NewRandomVariance,
// tests pin a FixedVariance.
type VarianceSource interface {
	Factor() float64
}

// FixedVariance always returns itself. Use FixedVariance(1.0) for
// deterministic forecasts in tests.
type FixedVariance float64

func (f FixedVariance) Factor() float64 { return float64(f) }

type randomVariance struct {
	rng *rand.Rand
}

// NewRandomVariance returns the production variance source, uniform over
// [varianceMin, varianceMax).
func NewRandomVariance() VarianceSource {
	return &randomVariance{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededVariance returns a reproducible random source for replayable
// forecasts.
func NewSeededVariance(seed uint64) VarianceSource {
	return &randomVariance{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (r *randomVariance) Factor() float64 {
	return varianceMin + r.rng.Float64()*(varianceMax-varianceMin)
}
