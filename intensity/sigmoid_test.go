package intensity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoidRoundTrip(t *testing.T) {
	for _, w := range []float64{0.5, 1.0, 2.0} {
		for _, k := range []float64{0.5, 1.0, 2.0} {
			f := Sigmoid{W: w, K: k}
			for _, c := range []float64{-50, -2, 0, 2, 50} {
				for _, u := range []float64{0.01, 0.1, 0.5, 0.9, 0.99} {
					dt := f.SampleInverse(u, c, 1)
					require.False(t, math.IsInf(dt, 1),
						"w=%v k=%v c=%v u=%v unexpectedly degenerate", w, k, c, u)
					require.InDeltaf(t, u, f.CDF(dt, c), 1e-8,
						"w=%v k=%v c=%v u=%v", w, k, c, u)
				}
			}
		}
	}
}

func TestSigmoidDegenerate(t *testing.T) {
	// With a decaying argument (w < 0) the total event probability is
	// bounded; a high enough uniform draw can never be reached.
	f := Sigmoid{W: -1.0, K: 1.0}
	dt := f.SampleInverse(0.9, -5, 1)
	assert.True(t, math.IsInf(dt, 1))

	// The CDF saturates strictly below 1 for the same parameters.
	assert.Less(t, f.CDF(1e6, -5), 1.0)
	assert.InDelta(t, -math.Expm1(-softplus(-5)), f.CDF(1e6, -5), 1e-12)
}

func TestSigmoidCDFMonotone(t *testing.T) {
	f := Sigmoid{W: 1.5, K: 0.8}
	for _, c := range []float64{-3, 0, 3} {
		prev := 0.0
		for dt := 0.0; dt <= 10; dt += 0.25 {
			cur := f.CDF(dt, c)
			require.GreaterOrEqual(t, cur, prev, "c=%v dt=%v", c, dt)
			prev = cur
		}
	}
}

func TestSigmoidIntegralAdditivity(t *testing.T) {
	f := Sigmoid{W: 0.9, K: 1.7}
	c := 0.4
	for _, split := range []struct{ dt1, dt2 float64 }{
		{0.5, 0.5}, {0.1, 1.9}, {2.0, 0.01},
	} {
		dt := split.dt1 + split.dt2
		cShift := c + f.W*split.dt1

		whole := f.Integral(dt, c)
		parts := f.Integral(split.dt1, c) + f.Integral(split.dt2, cShift)
		assert.InDelta(t, whole, parts, 1e-12*math.Abs(whole))

		wholeSq := f.IntegralSq(dt, c)
		partsSq := f.IntegralSq(split.dt1, c) + f.IntegralSq(split.dt2, cShift)
		assert.InDelta(t, wholeSq, partsSq, 1e-10*math.Abs(wholeSq))
	}
}

func TestSigmoidLogIntensityIncludesScale(t *testing.T) {
	// u(t0) = k * sigmoid(0) = k/2.
	f := Sigmoid{W: 1.0, K: 2.0}
	assert.InDelta(t, 0.0, f.LogIntensity(0, 0), 1e-15)

	f = Sigmoid{W: 1.0, K: 1.0}
	assert.InDelta(t, math.Log(0.5), f.LogIntensity(0, 0), 1e-15)
}

func TestSigmoidSaturationStability(t *testing.T) {
	// Large biases saturate the sigmoid; every expression must stay finite
	// instead of overflowing through a naive exp.
	f := Sigmoid{W: 1.0, K: 1.0}
	for _, c := range []float64{50, 300, 700} {
		logU := f.LogIntensity(1.0, c)
		assert.Falsef(t, math.IsNaN(logU) || math.IsInf(logU, 0), "c=%v logU=%v", c, logU)
		assert.InDelta(t, 0.0, logU, 1e-12, "saturated intensity is k")

		intU := f.Integral(2.0, c)
		assert.Falsef(t, math.IsNaN(intU) || math.IsInf(intU, 0), "c=%v intU=%v", c, intU)
		assert.InDelta(t, 2.0, intU, 1e-12, "saturated integral is k*dt")

		intU2 := f.IntegralSq(2.0, c)
		assert.Falsef(t, math.IsNaN(intU2) || math.IsInf(intU2, 0), "c=%v intU2=%v", c, intU2)
	}
}

func TestSoftplus(t *testing.T) {
	assert.InDelta(t, math.Log(2), softplus(0), 1e-15)
	assert.InDelta(t, 100, softplus(100), 1e-12)
	assert.InDelta(t, math.Exp(-100), softplus(-100), 1e-50)
	assert.InDelta(t, 0.5, sigmoidNeg(0), 1e-15)
}
