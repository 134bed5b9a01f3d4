// SPDX-License-Identifier: EPL-2.0

package ring

import "sync"

// Event identifies a page-boundary edge raised by the ring.
type Event int

const (
	// PageFilled fires when an enqueue completes a page.
	PageFilled Event = iota + 1
	// PageEmptied fires when a dequeue drains a page.
	PageEmptied
)

func (e Event) String() string {
	switch e {
	case PageFilled:
		return "page-filled"
	case PageEmptied:
		return "page-emptied"
	default:
		return "unknown"
	}
}

// EventFunc receives ring edge events. It runs on the goroutine that
// crossed the page boundary and must not block.
type EventFunc func(Event)

// Ring is a bounded single-producer/single-consumer ring of fixed-size
// sample pages.
type Ring struct {
	mu    sync.Mutex
	pages [][]byte

	pageSize int
	depth    int

	// producer cursor
	wPage int
	wPos  int

	// consumer cursor
	rPage int
	rPos  int

	filled int // complete, unconsumed pages

	readHeld  bool
	writeHeld bool

	sink EventFunc
}

// New creates a ring of depth pages of pageSize bytes each. The sink
// may be nil. Depth below 2 cannot keep the tick side fed while the
// foreground is mid-transfer and is rejected.
func New(pageSize, depth int, sink EventFunc) (*Ring, error) {
	if pageSize <= 0 {
		return nil, ErrPageSize
	}
	if depth < 2 {
		return nil, ErrDepthTooSmall
	}

	pages := make([][]byte, depth)
	for i := range pages {
		pages[i] = make([]byte, pageSize)
	}

	return &Ring{
		pages:    pages,
		pageSize: pageSize,
		depth:    depth,
		sink:     sink,
	}, nil
}

// PageSize returns the size of one page in samples.
func (r *Ring) PageSize() int { return r.pageSize }

// Depth returns the number of pages in the ring.
func (r *Ring) Depth() int { return r.depth }

// Reset returns the ring to its empty state and drops any checkouts.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wPage, r.wPos = 0, 0
	r.rPage, r.rPos = 0, 0
	r.filled = 0
	r.readHeld = false
	r.writeHeld = false
}

// Filled returns the number of complete unconsumed pages.
func (r *Ring) Filled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filled
}

// Available returns the number of samples the consumer side can still
// dequeue. Samples in a partially filled producer page are not counted.
func (r *Ring) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filled*r.pageSize - r.rPos
}

// Enqueue appends one sample on the producer side. Completing a page
// raises PageFilled. Called from the capture tick path.
func (r *Ring) Enqueue(sample byte) error {
	r.mu.Lock()

	if r.filled == r.depth {
		r.mu.Unlock()
		return ErrOverrun
	}

	r.pages[r.wPage][r.wPos] = sample
	r.wPos++

	var ev Event
	if r.wPos == r.pageSize {
		r.wPos = 0
		r.wPage = (r.wPage + 1) % r.depth
		r.filled++
		ev = PageFilled
	}
	sink := r.sink
	r.mu.Unlock()

	if ev != 0 && sink != nil {
		sink(ev)
	}
	return nil
}

// Dequeue removes one sample on the consumer side. Draining a page
// raises PageEmptied. Called from the output tick path.
func (r *Ring) Dequeue() (byte, error) {
	r.mu.Lock()

	if r.filled == 0 {
		r.mu.Unlock()
		return 0, ErrUnderrun
	}

	sample := r.pages[r.rPage][r.rPos]
	r.rPos++

	var ev Event
	if r.rPos == r.pageSize {
		r.rPos = 0
		r.rPage = (r.rPage + 1) % r.depth
		r.filled--
		ev = PageEmptied
	}
	sink := r.sink
	r.mu.Unlock()

	if ev != 0 && sink != nil {
		sink(ev)
	}
	return sample, nil
}

// CheckoutRead hands the oldest full page to the foreground for a
// storage write. The page stays owned by the caller until ReleaseRead.
func (r *Ring) CheckoutRead() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.readHeld {
		return nil, ErrPageHeld
	}
	if r.filled == 0 {
		return nil, ErrUnderrun
	}

	r.readHeld = true
	return r.pages[r.rPage], nil
}

// ReleaseRead returns a page obtained from CheckoutRead and frees it
// for the producer. No edge event fires on this path.
func (r *Ring) ReleaseRead() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.readHeld {
		return
	}

	r.readHeld = false
	r.rPos = 0
	r.rPage = (r.rPage + 1) % r.depth
	r.filled--
}

// CheckoutWrite hands a free page to the foreground to fill from
// storage. The page stays owned by the caller until CommitWrite.
func (r *Ring) CheckoutWrite() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writeHeld {
		return nil, ErrPageHeld
	}
	if r.filled == r.depth {
		return nil, ErrOverrun
	}

	r.writeHeld = true
	return r.pages[r.wPage], nil
}

// CommitWrite marks a page obtained from CheckoutWrite as full and
// available to the consumer. No edge event fires on this path.
func (r *Ring) CommitWrite() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.writeHeld {
		return
	}

	r.writeHeld = false
	r.wPos = 0
	r.wPage = (r.wPage + 1) % r.depth
	r.filled++
}
