package sim

import (
	"fmt"

	"github.com/ZisuWang/tpprl"
)

// Event is one arrival in the shared feed. TimeDelta is the elapsed time
// since the previous feed event.
type Event struct {
	SrcID     int
	Time      float64
	TimeDelta float64
}

// Broadcaster models one event source: it owns a sampler, its hidden state,
// and the wall rank of its latest own post (the number of foreign events
// that arrived since it last posted).
type Broadcaster struct {
	srcID   int
	sampler *tpprl.Sampler
	updater StateUpdater

	h             []float64
	lastSelfEvent float64
	rank          float64
}

// NewBroadcaster creates a broadcaster around its own sampler. The caller
// chooses samplerCfg.Seed; simulations derive it from the root seed and the
// source index so that runs stay reproducible.
func NewBroadcaster(srcID int, samplerCfg tpprl.Config, updater StateUpdater) (*Broadcaster, error) {
	s, err := tpprl.New(samplerCfg)
	if err != nil {
		return nil, err
	}
	return &Broadcaster{
		srcID:         srcID,
		sampler:       s,
		updater:       updater,
		h:             append([]float64(nil), samplerCfg.InitH...),
		lastSelfEvent: samplerCfg.TMin,
	}, nil
}

// SrcID returns the broadcaster's source id.
func (b *Broadcaster) SrcID() int { return b.srcID }

// Sampler returns the broadcaster's sampler for inspection.
func (b *Broadcaster) Sampler() *tpprl.Sampler { return b.sampler }

// NextInterval ingests an observed event and returns the delay from the
// broadcaster's latest own post to its next hypothetical one. A nil event
// asks for the initial candidate before anything has happened. The delay
// may be +Inf (the source never posts again); a negative delay means the
// driver fed a stale or out-of-order event and panics.
func (b *Broadcaster) NextInterval(ev *Event) float64 {
	if ev == nil {
		return b.sampler.NextSample() - b.lastSelfEvent
	}

	own := ev.SrcID == b.srcID
	if own {
		b.lastSelfEvent = ev.Time
		b.rank = 0
	} else {
		b.rank++
	}

	b.h = b.updater.Update(ev.SrcID, ev.TimeDelta, b.h, b.rank)
	next := b.sampler.RegisterEvent(ev.Time, b.h, own)

	delta := next - b.lastSelfEvent
	if delta < 0 {
		panic(fmt.Sprintf("sim: negative delay %v for source %d at t=%v",
			delta, b.srcID, ev.Time))
	}
	return delta
}
