// SPDX-License-Identifier: EPL-2.0

package dvr

import "sync/atomic"

// Coordinator carries the page-ready and stream-complete signals
// between the tick context and the foreground loop.
//
// Each flag has exactly one setter context and one clearer context:
// the tick path sets, the foreground polls-and-clears. A signal raised
// while the previous one is still pending is dropped; with a ring depth
// of at least 2 pages and foreground service faster than the page
// cadence, that situation cannot arise by construction.
type Coordinator struct {
	pageReady atomic.Bool
	complete  atomic.Bool
}

// Reset clears both signals. Called at session start, before either
// context is live.
func (c *Coordinator) Reset() {
	c.pageReady.Store(false)
	c.complete.Store(false)
}

// RequestPageReady raises the page-ready signal. Tick context only.
func (c *Coordinator) RequestPageReady() {
	c.pageReady.CompareAndSwap(false, true)
}

// PollPageReady atomically observes and clears the page-ready signal.
// Foreground context only.
func (c *Coordinator) PollPageReady() bool {
	return c.pageReady.CompareAndSwap(true, false)
}

// SignalComplete raises the stream-complete signal. Tick context only.
func (c *Coordinator) SignalComplete() {
	c.complete.CompareAndSwap(false, true)
}

// PollComplete atomically observes and clears the stream-complete
// signal. Foreground context only.
func (c *Coordinator) PollComplete() bool {
	return c.complete.CompareAndSwap(true, false)
}
