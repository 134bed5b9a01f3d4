// SPDX-License-Identifier: EPL-2.0

package dvr

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/voxrec/ring"
	"github.com/ik5/voxrec/store"
)

// expansionNum/expansionDen fix the playback expansion: every 2 raw
// samples become 3 output levels, reconciling the capture rate with an
// output tick rate 3/2 times faster.
const (
	expansionNum = 3
	expansionDen = 2
)

// TickBudget returns the number of output levels emitted for a stream
// of sampleCount raw samples: floor(3*S/2). The last odd sample, if
// any, begins a pair that is never completed.
func TickBudget(sampleCount int) int64 {
	return int64(sampleCount) * expansionNum / expansionDen
}

// Player drives one playback session: the foreground streams pages
// from storage into the ring while the output tick dequeues samples
// through the sample-rate converter.
type Player struct {
	ring  *ring.Ring
	store store.Store
	out   Output
	coord Coordinator
	conv  Converter
	log   *slog.Logger

	// lowWater is the remaining-tick threshold below which the tail of
	// the stream is already buffered and refills stop.
	lowWater int64

	ticksLeft atomic.Int64
	tickErr   atomic.Pointer[error] // protocol violation from the tick path

	r store.Reader
}

// NewPlayer wires a player over the shared ring.
func NewPlayer(rg *ring.Ring, st store.Store, out Output, log *slog.Logger) *Player {
	return &Player{
		ring:     rg,
		store:    st,
		out:      out,
		log:      log,
		lowWater: TickBudget(rg.PageSize()),
	}
}

// Start opens the named stream, primes the ring with two pages, and
// arms the output tick. Priming ahead of the first tick is what keeps
// the very first pair dequeue from underrunning.
func (p *Player) Start(name string) error {
	if p.r != nil {
		return ErrSessionActive
	}

	p.ring.Reset()
	p.coord.Reset()
	p.conv.Reset()
	p.tickErr.Store(nil)

	r, err := p.store.Open(name)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}

	budget := TickBudget(r.SampleCount())
	if budget == 0 {
		r.Close()
		return ErrEmptyStream
	}
	p.ticksLeft.Store(budget)
	p.r = r

	for it := 0; it < 2; it++ {
		if err := p.refillPage(); err != nil {
			r.Close()
			p.r = nil
			return err
		}
	}

	if err := p.out.Enable(p.onTick); err != nil {
		r.Close()
		p.r = nil
		return fmt.Errorf("enable output: %w", err)
	}

	p.log.Info("playback started", "stream", name, "samples", r.SampleCount(), "ticks", budget)
	return nil
}

// onTick runs once per output tick on the device's tick goroutine.
func (p *Player) onTick() {
	if p.ticksLeft.Add(-1) < 0 {
		// Budget spent: disarm instead of emitting a level.
		p.out.Disable()
		p.coord.SignalComplete()
		return
	}

	level, err := p.conv.Next(p.ring)
	if err != nil {
		verr := fmt.Errorf("%w: %w", ErrTickViolation, err)
		p.tickErr.Store(&verr)
		p.out.Disable()
		p.coord.SignalComplete()
		return
	}
	p.out.SetLevel(level)
}

// HandleEvent consumes ring edges on the tick path. An emptied page
// requests a foreground refill unless the remainder of the stream is
// already buffered.
func (p *Player) HandleEvent(ev ring.Event) {
	if ev != ring.PageEmptied {
		return
	}

	if p.ticksLeft.Load() > p.lowWater {
		p.coord.RequestPageReady()
	}
}

// RequestStop disarms the output tick and discards the remaining
// budget; the foreground observes completion on its next Service call.
func (p *Player) RequestStop() {
	p.out.Disable()
	p.ticksLeft.Store(0)
	p.coord.SignalComplete()
	p.log.Info("stop requested, playback cut")
}

// Service runs one foreground iteration: refill on page-ready, finalize
// on stream-complete. The returned done reports session end.
func (p *Player) Service() (done bool, err error) {
	if p.r == nil {
		return false, ErrNoSession
	}

	if ep := p.tickErr.Load(); ep != nil {
		p.Abort()
		return true, *ep
	}

	switch {
	case p.coord.PollPageReady():
		if err := p.refillPage(); err != nil {
			p.Abort()
			return true, err
		}
		return false, nil

	case p.coord.PollComplete():
		if err := p.r.Close(); err != nil {
			p.r = nil
			return true, fmt.Errorf("close stream: %w", err)
		}
		p.r = nil
		p.log.Info("playback complete")
		return true, nil
	}

	return false, nil
}

func (p *Player) refillPage() error {
	page, err := p.ring.CheckoutWrite()
	if err != nil {
		return fmt.Errorf("checkout page: %w", err)
	}

	if _, err := p.r.ReadPage(page); err != nil {
		p.ring.CommitWrite()
		return fmt.Errorf("read page: %w", err)
	}
	p.ring.CommitWrite()
	return nil
}

// Abort tears the session down after a failure: output disarmed,
// container closed, ring released.
func (p *Player) Abort() {
	p.out.Disable()
	if p.r != nil {
		p.r.Close()
		p.r = nil
	}
	p.ring.Reset()
}
