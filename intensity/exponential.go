package intensity

import "math"

// Exponential is the family with intensity u(t0+dt) = exp(c + w*dt): the
// log-intensity grows (or decays, for w < 0) linearly in the elapsed time.
type Exponential struct {
	// W is the growth rate of the log-intensity. Must be nonzero.
	W float64
}

// CDF returns 1 - exp((exp(c)/w) * (1 - exp(w*dt))), written with expm1 so
// that small-probability intervals do not cancel.
func (f Exponential) CDF(dt, c float64) float64 {
	return -math.Expm1(math.Exp(c) / f.W * -math.Expm1(f.W*dt))
}

// SampleInverse solves D = 1 - (w/exp(c)) * ln((1-u)/q) and returns
// ln(D)/w, or +Inf when D <= 0 (the intensity attenuates to zero before the
// required mass is reached).
func (f Exponential) SampleInverse(u, c, q float64) float64 {
	d := 1 - (f.W/math.Exp(c))*math.Log((1-u)/q)
	if d <= 0 {
		return math.Inf(1)
	}
	return math.Log(d) / f.W
}

// LogIntensity returns c + w*dt.
func (f Exponential) LogIntensity(dt, c float64) float64 {
	return c + f.W*dt
}

// Integral returns (exp(c+w*dt) - exp(c)) / w.
func (f Exponential) Integral(dt, c float64) float64 {
	return math.Exp(c) / f.W * math.Expm1(f.W*dt)
}

// IntegralSq returns (exp(2c+2w*dt) - exp(2c)) / (2w).
func (f Exponential) IntegralSq(dt, c float64) float64 {
	return math.Exp(2*c) / (2 * f.W) * math.Expm1(2*f.W*dt)
}
