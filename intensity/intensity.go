// Package intensity provides closed-form intensity families for a
// self-exciting temporal point process whose log-intensity is an affine
// function of the elapsed time since the last event.
//
// Each family exposes the four coupled expressions a CDF-inversion sampler
// needs (CDF, inverse sample, and the first and second integrals of the
// intensity) plus the log-intensity itself. All operations are pure
// functions of the elapsed time dt since the anchor and the bias c that was
// in force at the anchor; the decay/growth rate w (and, for the sigmoid
// family, the scale k) is fixed per family instance.
package intensity

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroRate indicates a zero decay/growth rate, for which none of the
	// closed forms are defined.
	ErrZeroRate = errors.New("intensity: rate w must be nonzero")
	// ErrUnknownFamily indicates an unrecognized family name.
	ErrUnknownFamily = errors.New("intensity: unknown family")
)

// Family is a closed-form intensity shape.
//
// SampleInverse inverts the survival function at tail probability (1-u)/q
// and returns the elapsed time of the next event, or +Inf when the process
// attenuates before crossing the required probability mass. +Inf is a
// legitimate outcome ("never fires again"), not an error.
type Family interface {
	// CDF returns the probability that an event has occurred within
	// elapsed time dt of the anchor, given bias c at the anchor.
	CDF(dt, c float64) float64

	// SampleInverse returns the elapsed time at which the CDF, conditioned
	// on the accumulated survival mass q, reaches the uniform variate u.
	SampleInverse(u, c, q float64) float64

	// LogIntensity returns log u(t0+dt).
	LogIntensity(dt, c float64) float64

	// Integral returns U(dt) - U(0), the definite integral of the
	// intensity over [0, dt].
	Integral(dt, c float64) float64

	// IntegralSq returns U²(dt) - U²(0), the definite integral of the
	// squared intensity over [0, dt].
	IntegralSq(dt, c float64) float64
}

// Constructor builds a Family from a rate w and scale k. Families that have
// no scale parameter ignore k.
type Constructor func(w, k float64) Family

// Registry maps family names to their constructors.
var Registry = map[string]Constructor{
	"exponential": func(w, _ float64) Family { return Exponential{W: w} },
	"sigmoid":     func(w, k float64) Family { return Sigmoid{W: w, K: k} },
}

// New returns the named intensity family with the given parameters.
func New(name string, w, k float64) (Family, error) {
	if w == 0 {
		return nil, ErrZeroRate
	}
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return ctor(w, k), nil
}
