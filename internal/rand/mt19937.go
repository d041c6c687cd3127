// Package rand provides random number generation compatible with NumPy's
// RandomState. It implements the Mersenne Twister (MT19937) algorithm so that
// simulated trajectories reproduce the Python reference implementation
// bit-for-bit given the same seed.
package rand

import "math"

const (
	mtN        = 624
	mtM        = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// MT19937 is a Mersenne Twister random number generator compatible with NumPy.
type MT19937 struct {
	mt  [mtN]uint32
	mti int

	// Cached second deviate of the polar Gaussian transform, matching the
	// gauss state in NumPy's legacy RandomState.
	gauss    float64
	hasGauss bool
}

// NewMT19937 creates a new Mersenne Twister with the given seed.
// This matches numpy.random.RandomState(seed).
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// DerivedSeed returns the seed for the component with the given index under
// a root seed. Components of a simulation (one sampler per source, one
// generator per replica) each own an independently seeded MT19937; deriving
// the seeds as root+1+index keeps multi-component runs reproducible without
// any shared generator.
func DerivedSeed(root uint32, index int) uint32 {
	return root + 1 + uint32(index)
}

// Seed initializes the generator, matching numpy.random.RandomState(seed).
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
	mt.hasGauss = false
	mt.gauss = 0
}

// Uint32 generates a random uint32.
func (mt *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	if mt.mti >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
		mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		mt.mti = 0
	}

	y = mt.mt[mt.mti]
	mt.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18

	return y
}

// Float64 generates a random float64 in [0, 1) with 53-bit precision.
// This matches numpy's random_sample() / rand().
func (mt *MT19937) Float64() float64 {
	a := mt.Uint32() >> 5
	b := mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform generates a random float64 in [low, high).
// This matches numpy.random.uniform(low, high).
func (mt *MT19937) Uniform(low, high float64) float64 {
	return low + (high-low)*mt.Float64()
}

// Gauss returns a standard normal deviate, matching numpy's
// standard_normal(): the Marsaglia polar method, returning one deviate per
// call and caching the other half of each generated pair.
func (mt *MT19937) Gauss() float64 {
	if mt.hasGauss {
		mt.hasGauss = false
		return mt.gauss
	}

	var x1, x2, r2 float64
	for {
		x1 = 2.0*mt.Float64() - 1.0
		x2 = 2.0*mt.Float64() - 1.0
		r2 = x1*x1 + x2*x2
		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}

	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	mt.gauss = f * x1
	mt.hasGauss = true
	return f * x2
}
