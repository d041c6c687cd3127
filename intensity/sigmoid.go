package intensity

import "math"

// Sigmoid is the family with intensity u(t0+dt) = k * sigmoid(c + w*dt):
// the intensity saturates at k instead of growing without bound.
type Sigmoid struct {
	// W is the growth rate inside the sigmoid. Must be nonzero.
	W float64
	// K scales the saturated intensity.
	K float64
}

// CDF returns 1 - ((1+exp(c)) / (1+exp(c+w*dt)))^(k/w). Computed through
// softplus so that large c + w*dt never overflows.
func (f Sigmoid) CDF(dt, c float64) float64 {
	return -math.Expm1(f.K / f.W * (softplus(c) - softplus(c+f.W*dt)))
}

// SampleInverse solves D = (1+exp(c)) * ((1-u)/q)^(-w/k) - 1 and returns
// (ln(D) - c)/w, or +Inf when D <= 0. D is formed as expm1 of the log of
// the product, which keeps (1+exp(c)) representable for any c.
func (f Sigmoid) SampleInverse(u, c, q float64) float64 {
	logD1 := softplus(c) - (f.W/f.K)*math.Log((1-u)/q)
	d := math.Expm1(logD1)
	if d <= 0 {
		return math.Inf(1)
	}
	return (math.Log(d) - c) / f.W
}

// LogIntensity returns log(k) + log(sigmoid(c + w*dt)).
func (f Sigmoid) LogIntensity(dt, c float64) float64 {
	return math.Log(f.K) - softplus(-(c + f.W*dt))
}

// Integral returns (k/w) * (log1p(exp(c+w*dt)) - log1p(exp(c))).
func (f Sigmoid) Integral(dt, c float64) float64 {
	return f.K / f.W * (softplus(c+f.W*dt) - softplus(c))
}

// IntegralSq returns (k²/w) * (sigmoid(-(c+w*dt)) + log1p(exp(c+w*dt))
// - sigmoid(-c) - log1p(exp(c))).
func (f Sigmoid) IntegralSq(dt, c float64) float64 {
	x := c + f.W*dt
	return f.K * f.K / f.W *
		(sigmoidNeg(x) + softplus(x) - sigmoidNeg(c) - softplus(c))
}

// softplus returns log(1 + exp(x)) without overflowing for large x.
func softplus(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

// sigmoidNeg returns 1/(1+exp(x)), i.e. sigmoid(-x), via exp(-softplus(x)).
func sigmoidNeg(x float64) float64 {
	return math.Exp(-softplus(x))
}
