// Package sim drives multi-source simulations of the self-exciting point
// process: each source owns an independently seeded sampler, observes every
// event in the shared feed, and updates its hidden state through an
// external recurrent update function.
package sim

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/ZisuWang/tpprl/internal/rand"
)

var log = logrus.WithField("component", "sim")

// StateUpdater produces the next hidden state after an event. It is the
// boundary to the recurrent model: implementations may be a local matrix
// transform or a remote model-serving call; the sampler never sees the
// difference. rank is the wall rank of the observing source's latest own
// post at the time of the event.
type StateUpdater interface {
	Update(srcID int, timeDelta float64, h []float64, rank float64) []float64
}

// TanhUpdater is the reference recurrent update
//
//	h' = tanh(Wm[:,embed(src)] + Wh·h + Wr*rank + Wt*dt + Bh)
//
// with a per-source input embedding column in Wm.
type TanhUpdater struct {
	Wm *mat.Dense    // dim x nEmbed input embeddings, one column per source
	Wh *mat.Dense    // dim x dim recurrent weights
	Wr *mat.VecDense // rank input weights
	Wt *mat.VecDense // time-delta input weights
	Bh *mat.VecDense // bias

	// Embed maps a source id to its column in Wm. A nil map uses the
	// source id directly.
	Embed map[int]int
}

// NewRandomTanhUpdater builds a TanhUpdater with Gaussian weights scaled by
// 1/sqrt(dim), drawn from the given generator.
func NewRandomTanhUpdater(dim, nSources int, rng *rand.MT19937) *TanhUpdater {
	scale := 1 / math.Sqrt(float64(dim))
	gauss := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = scale * rng.Gauss()
		}
		return out
	}

	return &TanhUpdater{
		Wm: mat.NewDense(dim, nSources, gauss(dim*nSources)),
		Wh: mat.NewDense(dim, dim, gauss(dim*dim)),
		Wr: mat.NewVecDense(dim, gauss(dim)),
		Wt: mat.NewVecDense(dim, gauss(dim)),
		Bh: mat.NewVecDense(dim, gauss(dim)),
	}
}

// Update applies the tanh recurrence and returns the new hidden state.
func (u *TanhUpdater) Update(srcID int, timeDelta float64, h []float64, rank float64) []float64 {
	col := srcID
	if u.Embed != nil {
		col = u.Embed[srcID]
	}

	dim := len(h)
	var wh mat.VecDense
	wh.MulVec(u.Wh, mat.NewVecDense(dim, h))

	out := make([]float64, dim)
	for i := range out {
		out[i] = math.Tanh(u.Wm.At(i, col) + wh.AtVec(i) +
			u.Wr.AtVec(i)*rank + u.Wt.AtVec(i)*timeDelta + u.Bh.AtVec(i))
	}
	return out
}
