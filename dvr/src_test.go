// SPDX-License-Identifier: EPL-2.0

package dvr

import (
	"errors"
	"testing"

	"github.com/ik5/voxrec/ring"
)

func mustRing(t *testing.T, pageSize, depth int) *ring.Ring {
	t.Helper()
	rg, err := ring.New(pageSize, depth, nil)
	if err != nil {
		t.Fatalf("ring.New() error = %v", err)
	}
	return rg
}

func TestConverter_PairExpansion(t *testing.T) {
	t.Parallel()

	rg := mustRing(t, 4, 2)
	for _, s := range []byte{10, 11, 20, 30} {
		if err := rg.Enqueue(s); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	var c Converter
	c.Reset()

	// Pair (10, 11): first, truncated mean, second
	want := []byte{10, 10, 11, 20, 25, 30}
	for i, w := range want {
		got, err := c.Next(rg)
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("Next() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestConverter_MeanRoundsHalfDown(t *testing.T) {
	t.Parallel()

	rg := mustRing(t, 2, 2)
	rg.Enqueue(10)
	rg.Enqueue(11)

	var c Converter
	c.Reset()

	c.Next(rg) // first of pair
	mid, err := c.Next(rg)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if mid != 10 {
		t.Errorf("mid level for (10, 11) = %d, want 10", mid)
	}
}

func TestConverter_EqualPairMean(t *testing.T) {
	t.Parallel()

	rg := mustRing(t, 2, 2)
	rg.Enqueue(10)
	rg.Enqueue(10)

	var c Converter
	c.Reset()

	c.Next(rg)
	mid, _ := c.Next(rg)
	if mid != 10 {
		t.Errorf("mid level for (10, 10) = %d, want 10", mid)
	}
}

func TestConverter_HoldsLevelOnOddTail(t *testing.T) {
	t.Parallel()

	// Page size 3 leaves one sample stranded after the first pair
	rg := mustRing(t, 3, 2)
	rg.Enqueue(40)
	rg.Enqueue(60)
	rg.Enqueue(90)

	var c Converter
	c.Reset()

	want := []byte{40, 50, 60}
	for i, w := range want {
		got, err := c.Next(rg)
		if err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("Next() #%d = %d, want %d", i, got, w)
		}
	}

	// One sample left: the pair must not be split, the level holds
	got, err := c.Next(rg)
	if err != nil {
		t.Fatalf("Next() on odd tail error = %v", err)
	}
	if got != 60 {
		t.Errorf("Next() on odd tail = %d, want held 60", got)
	}
	if rg.Available() != 1 {
		t.Errorf("odd tail was dequeued: Available() = %d, want 1", rg.Available())
	}
}

func TestConverter_UnderrunIsLoud(t *testing.T) {
	t.Parallel()

	rg := mustRing(t, 4, 2)

	var c Converter
	c.Reset()

	if _, err := c.Next(rg); !errors.Is(err, ring.ErrUnderrun) {
		t.Errorf("Next() on empty ring error = %v, want ring.ErrUnderrun", err)
	}
}

func TestTickBudget(t *testing.T) {
	t.Parallel()

	cases := []struct {
		samples int
		want    int64
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{5, 7},
		{1024, 1536},
	}
	for _, tc := range cases {
		if got := TickBudget(tc.samples); got != tc.want {
			t.Errorf("TickBudget(%d) = %d, want %d", tc.samples, got, tc.want)
		}
	}
}
