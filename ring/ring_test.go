// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"errors"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New(0, 2, nil); !errors.Is(err, ErrPageSize) {
		t.Errorf("New(0, 2) error = %v, want ErrPageSize", err)
	}

	if _, err := New(512, 1, nil); !errors.Is(err, ErrDepthTooSmall) {
		t.Errorf("New(512, 1) error = %v, want ErrDepthTooSmall", err)
	}

	r, err := New(512, 2, nil)
	if err != nil {
		t.Fatalf("New(512, 2) error = %v", err)
	}
	if r.PageSize() != 512 || r.Depth() != 2 {
		t.Errorf("ring geometry = (%d, %d), want (512, 2)", r.PageSize(), r.Depth())
	}
}

func TestEnqueue_FiresPageFilled(t *testing.T) {
	t.Parallel()

	var events []Event
	r, _ := New(4, 2, func(ev Event) { events = append(events, ev) })

	for i := 0; i < 4; i++ {
		if err := r.Enqueue(byte(i)); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}

	if len(events) != 1 || events[0] != PageFilled {
		t.Fatalf("events = %v, want [page-filled]", events)
	}
	if r.Filled() != 1 {
		t.Errorf("Filled() = %d, want 1", r.Filled())
	}
}

func TestEnqueue_OverrunWhenAllPagesFull(t *testing.T) {
	t.Parallel()

	r, _ := New(2, 2, nil)

	for i := 0; i < 4; i++ {
		if err := r.Enqueue(byte(i)); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}

	// Both pages full, nothing consumed: the next sample has no home
	if err := r.Enqueue(0xFF); !errors.Is(err, ErrOverrun) {
		t.Errorf("Enqueue on full ring error = %v, want ErrOverrun", err)
	}
}

func TestDequeue_FiresPageEmptiedAndPreservesOrder(t *testing.T) {
	t.Parallel()

	var events []Event
	r, _ := New(3, 2, func(ev Event) { events = append(events, ev) })

	for i := 0; i < 3; i++ {
		r.Enqueue(byte(10 + i))
	}

	for i := 0; i < 3; i++ {
		got, err := r.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue() error = %v", err)
		}
		if got != byte(10+i) {
			t.Errorf("Dequeue() = %d, want %d", got, 10+i)
		}
	}

	// One PageFilled from the enqueues, one PageEmptied from the drain
	if len(events) != 2 || events[1] != PageEmptied {
		t.Fatalf("events = %v, want [page-filled page-emptied]", events)
	}

	if _, err := r.Dequeue(); !errors.Is(err, ErrUnderrun) {
		t.Errorf("Dequeue on empty ring error = %v, want ErrUnderrun", err)
	}
}

func TestDequeue_PartialPageNotVisible(t *testing.T) {
	t.Parallel()

	r, _ := New(4, 2, nil)

	// Two samples into a 4-sample page: no complete page yet
	r.Enqueue(1)
	r.Enqueue(2)

	if _, err := r.Dequeue(); !errors.Is(err, ErrUnderrun) {
		t.Errorf("Dequeue with only a partial page error = %v, want ErrUnderrun", err)
	}
}

func TestCheckoutRead_SingleHolder(t *testing.T) {
	t.Parallel()

	r, _ := New(2, 2, nil)
	r.Enqueue(7)
	r.Enqueue(8)

	page, err := r.CheckoutRead()
	if err != nil {
		t.Fatalf("CheckoutRead() error = %v", err)
	}
	if page[0] != 7 || page[1] != 8 {
		t.Errorf("page = %v, want [7 8]", page)
	}

	if _, err := r.CheckoutRead(); !errors.Is(err, ErrPageHeld) {
		t.Errorf("second CheckoutRead() error = %v, want ErrPageHeld", err)
	}

	r.ReleaseRead()
	if r.Filled() != 0 {
		t.Errorf("Filled() after release = %d, want 0", r.Filled())
	}

	if _, err := r.CheckoutRead(); !errors.Is(err, ErrUnderrun) {
		t.Errorf("CheckoutRead with no full page error = %v, want ErrUnderrun", err)
	}
}

func TestCheckoutWrite_RoundTripThroughDequeue(t *testing.T) {
	t.Parallel()

	r, _ := New(2, 2, nil)

	page, err := r.CheckoutWrite()
	if err != nil {
		t.Fatalf("CheckoutWrite() error = %v", err)
	}
	page[0] = 0xAA
	page[1] = 0xBB

	if _, err := r.CheckoutWrite(); !errors.Is(err, ErrPageHeld) {
		t.Errorf("second CheckoutWrite() error = %v, want ErrPageHeld", err)
	}

	r.CommitWrite()

	a, _ := r.Dequeue()
	b, _ := r.Dequeue()
	if a != 0xAA || b != 0xBB {
		t.Errorf("dequeued (%#x, %#x), want (0xaa, 0xbb)", a, b)
	}
}

func TestCheckoutWrite_OverrunWhenFull(t *testing.T) {
	t.Parallel()

	r, _ := New(2, 2, nil)

	for it := 0; it < 2; it++ {
		if _, err := r.CheckoutWrite(); err != nil {
			t.Fatalf("CheckoutWrite() error = %v", err)
		}
		r.CommitWrite()
	}

	if _, err := r.CheckoutWrite(); !errors.Is(err, ErrOverrun) {
		t.Errorf("CheckoutWrite on full ring error = %v, want ErrOverrun", err)
	}
}

func TestReset_DropsStateAndHolds(t *testing.T) {
	t.Parallel()

	r, _ := New(2, 2, nil)
	r.Enqueue(1)
	r.Enqueue(2)
	r.CheckoutRead()

	r.Reset()

	if r.Filled() != 0 {
		t.Errorf("Filled() after Reset = %d, want 0", r.Filled())
	}

	// Both sides usable again after reset
	if _, err := r.CheckoutWrite(); err != nil {
		t.Errorf("CheckoutWrite after Reset error = %v", err)
	}
}

func BenchmarkEnqueueDequeuePage(b *testing.B) {
	r, _ := New(512, 2, nil)

	b.ResetTimer()
	b.ReportAllocs()

	for it := 0; it < b.N; it++ {
		for i := 0; i < 512; i++ {
			if err := r.Enqueue(byte(i)); err != nil {
				b.Fatal(err)
			}
		}
		page, err := r.CheckoutRead()
		if err != nil {
			b.Fatal(err)
		}
		_ = page
		r.ReleaseRead()
	}
}

func TestWrapAround_ManyPages(t *testing.T) {
	t.Parallel()

	r, _ := New(4, 3, nil)

	// Stream 10 pages through a 3-page ring, one page at a time
	next := byte(0)
	expect := byte(0)
	for it := 0; it < 10; it++ {
		for it := 0; it < 4; it++ {
			if err := r.Enqueue(next); err != nil {
				t.Fatalf("Enqueue error = %v", err)
			}
			next++
		}
		for it := 0; it < 4; it++ {
			got, err := r.Dequeue()
			if err != nil {
				t.Fatalf("Dequeue error = %v", err)
			}
			if got != expect {
				t.Fatalf("Dequeue = %d, want %d", got, expect)
			}
			expect++
		}
	}
}
