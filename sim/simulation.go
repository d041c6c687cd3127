package sim

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ZisuWang/tpprl"
	"github.com/ZisuWang/tpprl/internal/rand"
)

// ErrNoSources indicates a simulation configured without any sources.
var ErrNoSources = errors.New("sim: at least one source is required")

// Config configures a Simulation.
type Config struct {
	// NSources is the number of broadcasters sharing the feed.
	NSources int

	// Start and Horizon bound the simulated time window.
	Start   float64
	Horizon float64

	// Seed is the root seed. Source i samples with the derived seed
	// root+1+i; no generator is shared between sources.
	Seed uint32

	// Sampler is the per-source sampler template; Seed and TMin are
	// overridden per source.
	Sampler tpprl.Config

	// Updater produces hidden-state transitions for every broadcaster.
	Updater StateUpdater
}

// Simulation advances a set of broadcasters through their shared feed.
type Simulation struct {
	Broadcasters []*Broadcaster

	start   float64
	horizon float64
}

// New creates a Simulation with one independently seeded broadcaster per
// source.
func New(cfg Config) (*Simulation, error) {
	if cfg.NSources <= 0 {
		return nil, ErrNoSources
	}

	bs := make([]*Broadcaster, cfg.NSources)
	for i := range bs {
		scfg := cfg.Sampler
		scfg.Seed = rand.DerivedSeed(cfg.Seed, i)
		scfg.TMin = cfg.Start
		b, err := NewBroadcaster(i, scfg, cfg.Updater)
		if err != nil {
			return nil, err
		}
		bs[i] = b
	}

	return &Simulation{
		Broadcasters: bs,
		start:        cfg.Start,
		horizon:      cfg.Horizon,
	}, nil
}

// Run plays the feed forward to the horizon and returns the merged event
// log. Each round the earliest pending candidate fires, every broadcaster
// observes it (the poster with a fresh draw, the rest by re-conditioning),
// and candidates are refreshed. A +Inf candidate removes a source from
// contention; the run ends at the horizon or when every candidate is +Inf.
func (s *Simulation) Run() []Event {
	next := make([]float64, len(s.Broadcasters))
	for i, b := range s.Broadcasters {
		delta := b.NextInterval(nil)
		next[i] = b.lastSelfEvent + delta
	}

	var events []Event
	lastTime := s.start
	for {
		j := -1
		for i, t := range next {
			if !math.IsInf(t, 1) && (j < 0 || t < next[j]) {
				j = i
			}
		}
		if j < 0 || next[j] > s.horizon {
			break
		}

		ev := Event{
			SrcID:     s.Broadcasters[j].srcID,
			Time:      next[j],
			TimeDelta: next[j] - lastTime,
		}
		events = append(events, ev)
		lastTime = ev.Time

		log.WithFields(logrus.Fields{
			"src":  ev.SrcID,
			"time": ev.Time,
		}).Debug("event")

		for i, b := range s.Broadcasters {
			delta := b.NextInterval(&ev)
			next[i] = b.lastSelfEvent + delta
		}
	}

	return events
}
