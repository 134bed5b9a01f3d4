// SPDX-License-Identifier: EPL-2.0

package dvr

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ik5/voxrec/ring"
	"github.com/ik5/voxrec/store"
)

// Recorder drives one capture session: the capture source fills the
// page ring on the tick path while the foreground drains full pages
// into storage through the coordinator's signals.
type Recorder struct {
	ring    *ring.Ring
	store   store.Store
	capture CaptureSource
	coord   Coordinator
	log     *slog.Logger

	// maxPages caps session length so a session always terminates,
	// stop request or not.
	maxPages int

	pagesLeft atomic.Int32

	w store.Writer
}

// NewRecorder wires a recorder over the shared ring. maxPages is the
// hard session cap in whole pages.
func NewRecorder(rg *ring.Ring, st store.Store, capture CaptureSource, maxPages int, log *slog.Logger) *Recorder {
	return &Recorder{
		ring:     rg,
		store:    st,
		capture:  capture,
		maxPages: maxPages,
		log:      log,
	}
}

// Start begins a capture session into the named stream.
func (r *Recorder) Start(name string) error {
	if r.w != nil {
		return ErrSessionActive
	}

	r.ring.Reset()
	r.coord.Reset()
	r.pagesLeft.Store(int32(r.maxPages))

	w, err := r.store.Create(name)
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	r.w = w

	if err := r.capture.Start(); err != nil {
		w.Close()
		r.w = nil
		return fmt.Errorf("start capture: %w", err)
	}

	r.log.Info("recording started", "stream", name, "max_pages", r.maxPages)
	return nil
}

// HandleEvent consumes ring edges on the tick path. Each filled page
// decrements the page budget; exhausting it stops the capture source
// and completes the stream, otherwise the foreground is signalled to
// drain the page.
func (r *Recorder) HandleEvent(ev ring.Event) {
	if ev != ring.PageFilled {
		return
	}

	if r.pagesLeft.Add(-1) <= 0 {
		r.capture.Stop()
		r.coord.SignalComplete()
		return
	}
	r.coord.RequestPageReady()
}

// RequestStop arms cooperative termination: the budget is clamped so
// the next filled page finalizes the stream. Nothing is cut mid-page.
func (r *Recorder) RequestStop() {
	for {
		v := r.pagesLeft.Load()
		if v <= 1 {
			return
		}
		if r.pagesLeft.CompareAndSwap(v, 1) {
			r.log.Info("stop requested, finishing current page")
			return
		}
	}
}

// Service runs one foreground iteration. Exactly one branch fires per
// call: a ready page is written to storage, or a completed stream is
// finalized. The returned done reports session end.
func (r *Recorder) Service() (done bool, err error) {
	if r.w == nil {
		return false, ErrNoSession
	}

	switch {
	case r.coord.PollPageReady():
		if err := r.drainPage(); err != nil {
			r.Abort()
			return true, err
		}
		return false, nil

	case r.coord.PollComplete():
		// Every full page still in the ring belongs to the session.
		// Draining them all covers the coalesced case where two pages
		// filled between services and a single ready signal stood for
		// both.
		for r.ring.Filled() > 0 {
			if err := r.drainPage(); err != nil {
				r.Abort()
				return true, err
			}
		}
		if err := r.w.Close(); err != nil {
			r.w = nil
			return true, fmt.Errorf("close stream: %w", err)
		}
		r.w = nil
		r.log.Info("recording complete")
		return true, nil
	}

	return false, nil
}

func (r *Recorder) drainPage() error {
	page, err := r.ring.CheckoutRead()
	if err != nil {
		return fmt.Errorf("checkout page: %w", err)
	}
	defer r.ring.ReleaseRead()

	if err := r.w.WritePage(page); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// Abort tears the session down after a failure: capture halted, the
// partial container closed, the ring released. The stored pages up to
// the failure remain on disk.
func (r *Recorder) Abort() {
	r.capture.Stop()
	if r.w != nil {
		r.w.Close()
		r.w = nil
	}
	r.ring.Reset()
}
