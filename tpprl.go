// Package tpprl implements exact inverse-transform sampling of event times
// for a self-exciting temporal point process whose intensity is a function
// of an evolving hidden state and the time elapsed since the last event.
//
// The intensity has the form f(vt·h + bt + w*(t - t0)) where h is the
// hidden state at the anchor time t0 and f is one of the closed-form
// shapes in the intensity package. Writing c = vt·h + bt, the sampler
// draws the next event time by inverting the CDF of the process at a
// uniform variate, conditions correctly on "no event yet" when foreign
// events are observed, and evaluates closed-form log-likelihood and
// quadratic-penalty integrals over recorded trajectories.
//
// Basic usage:
//
//	s, err := tpprl.New(tpprl.DefaultConfig())
//	...
//	next := s.RegisterEvent(ev.Time, newHidden, ev.SrcID == srcID)
package tpprl

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ZisuWang/tpprl/intensity"
	"github.com/ZisuWang/tpprl/internal/rand"
)

// ErrDimensionMismatch indicates that the projection vector and the hidden
// state have different lengths.
var ErrDimensionMismatch = errors.New("tpprl: projection and hidden state dimensions differ")

// Config configures a Sampler.
type Config struct {
	// Family selects the intensity shape.
	// Options: "exponential", "sigmoid".
	// Default: "exponential"
	Family string

	// W is the growth/decay rate of the (log-)intensity in elapsed time.
	// Must be nonzero; immutable for the sampler's lifetime.
	// Default: 1.0
	W float64

	// K is the intensity scale of the sigmoid family.
	// Ignored by the exponential family.
	// Default: 1.0
	K float64

	// Vt and Bt define the projection c = Vt·h + Bt from the hidden state
	// to the log-intensity bias. Vt must have the same length as InitH.
	Vt []float64
	Bt float64

	// InitH is the hidden state at construction.
	InitH []float64

	// TMin is the anchor time at construction.
	// Default: 0
	TMin float64

	// Seed for the sampler's private random number generator.
	// Use a fixed seed for reproducible results.
	// Default: 42
	Seed uint32
}

// DefaultConfig returns the default sampler configuration.
func DefaultConfig() Config {
	return Config{
		Family: "exponential",
		W:      1.0,
		K:      1.0,
		TMin:   0,
		Seed:   42,
	}
}

// Sampler draws event times for a single source by CDF inversion.
//
// A Sampler owns its state exclusively, including a private seeded
// generator, and is not safe for concurrent use; simulations that run
// multiple sources in parallel give each source its own Sampler with a
// derived seed (see rand.DerivedSeed).
type Sampler struct {
	family intensity.Family
	vt     []float64
	bt     float64
	w      float64

	// Sampling state. q is the survival probability accumulated since the
	// last fresh draw; uUnif is the uniform variate underlying the current
	// candidate. q stays in (0, 1] and returns to 1 exactly when a fresh
	// variate is drawn.
	c     float64
	t0    float64
	q     float64
	uUnif float64
	h     []float64

	rng *rand.MT19937
}

// New creates a Sampler and performs the initial fresh draw at cfg.TMin.
func New(cfg Config) (*Sampler, error) {
	fam, err := intensity.New(cfg.Family, cfg.W, cfg.K)
	if err != nil {
		return nil, err
	}
	if len(cfg.Vt) != len(cfg.InitH) {
		return nil, fmt.Errorf("%w: len(Vt)=%d, len(InitH)=%d",
			ErrDimensionMismatch, len(cfg.Vt), len(cfg.InitH))
	}

	s := &Sampler{
		family: fam,
		vt:     append([]float64(nil), cfg.Vt...),
		bt:     cfg.Bt,
		w:      cfg.W,
		t0:     cfg.TMin,
		rng:    rand.NewMT19937(cfg.Seed),
	}
	s.Reset(cfg.TMin, cfg.InitH, true)
	return s, nil
}

// Reset re-anchors the sampler at curTime with a new hidden state and
// returns the next candidate event time (possibly +Inf).
//
// With resetSample true the sampler draws a fresh uniform variate and sets
// q back to 1: the source's own clock has restarted. With resetSample false
// the existing variate is kept and q is multiplied by the probability that
// no event occurred over [t0, curTime] under the outgoing bias, so the
// candidate stays consistent with everything observed so far.
//
// curTime must be >= the current anchor; earlier times panic.
func (s *Sampler) Reset(curTime float64, h []float64, resetSample bool) float64 {
	if curTime < s.t0 {
		panic(fmt.Sprintf("tpprl: reset at t=%v before anchor t0=%v", curTime, s.t0))
	}

	if resetSample {
		s.uUnif = s.rng.Float64()
		s.q = 1.0
	} else {
		s.q *= 1 - s.family.CDF(curTime-s.t0, s.c)
	}

	s.h = append(s.h[:0], h...)
	s.c = floats.Dot(s.vt, s.h) + s.bt
	s.t0 = curTime

	return s.NextSample()
}

// RegisterEvent records an observed event and returns the next candidate
// event time. An own event restarts the clock with a fresh draw; a foreign
// event only re-conditions the current draw.
func (s *Sampler) RegisterEvent(time float64, h []float64, ownEvent bool) float64 {
	return s.Reset(time, h, ownEvent)
}

// ResetOnlySample advances the bias by the linear time decay accumulated
// since the anchor, re-anchors at curTime, and forces a fresh draw. It does
// not register an event or touch the hidden state, which makes it suitable
// for generating independent look-ahead samples.
func (s *Sampler) ResetOnlySample(curTime float64) float64 {
	if curTime < s.t0 {
		panic(fmt.Sprintf("tpprl: reset at t=%v before anchor t0=%v", curTime, s.t0))
	}

	s.c += s.w * (curTime - s.t0)
	s.t0 = curTime
	s.uUnif = s.rng.Float64()
	s.q = 1.0

	return s.NextSample()
}

// NextSample returns the candidate event time for the current state: the
// anchor plus the inverse-CDF solution, or +Inf when the process never
// reaches the required probability mass again.
func (s *Sampler) NextSample() float64 {
	return s.t0 + s.family.SampleInverse(s.uUnif, s.c, s.q)
}

// LogLikelihood evaluates the trajectory log-likelihood: the sum of
// log-intensities over the source's own events minus the integral of the
// intensity over every interval. biases[i] is the bias in force throughout
// deltas[i]; the intensity only changes at interval boundaries.
//
// The final interval is the censored survival tail up to the horizon, so
// ownEvent for it must be false; a true final flag panics, as do mismatched
// slice lengths.
func (s *Sampler) LogLikelihood(deltas, biases []float64, ownEvent []bool) float64 {
	if len(deltas) != len(biases) || len(deltas) != len(ownEvent) {
		panic("tpprl: trajectory slices must have equal lengths")
	}
	if n := len(ownEvent); n > 0 && ownEvent[n-1] {
		panic("tpprl: the final interval is the survival tail and cannot be an own event")
	}

	var logSum, intSum float64
	for i, dt := range deltas {
		if ownEvent[i] {
			logSum += s.family.LogIntensity(dt, biases[i])
		}
		intSum += s.family.Integral(dt, biases[i])
	}
	return logSum - intSum
}

// QuadraticPenalty evaluates the integral of the squared intensity over the
// trajectory, a smoothness penalty independent of event ownership. The
// positional pairing of deltas and biases is as in LogLikelihood.
func (s *Sampler) QuadraticPenalty(deltas, biases []float64) float64 {
	if len(deltas) != len(biases) {
		panic("tpprl: trajectory slices must have equal lengths")
	}

	var sum float64
	for i, dt := range deltas {
		sum += s.family.IntegralSq(dt, biases[i])
	}
	return sum
}

// C returns the current log-intensity bias.
func (s *Sampler) C() float64 { return s.c }

// T0 returns the current anchor time.
func (s *Sampler) T0() float64 { return s.t0 }

// Q returns the survival probability accumulated since the last fresh draw.
func (s *Sampler) Q() float64 { return s.q }

// HiddenState returns a copy of the last hidden state supplied.
func (s *Sampler) HiddenState() []float64 {
	return append([]float64(nil), s.h...)
}
