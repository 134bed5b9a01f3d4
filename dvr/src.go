// SPDX-License-Identifier: EPL-2.0

package dvr

import (
	"github.com/ik5/voxrec/pcm"
	"github.com/ik5/voxrec/ring"
)

// Converter is the playback sample-rate converter. Samples are stored
// at the capture rate but the output peripheral ticks 3/2 times faster;
// the converter reconciles the two by expanding every pair of raw
// samples into three output levels: the first sample, the truncated
// mean of the pair, and the second sample.
//
// Next runs on the output tick path and must stay non-blocking. All
// state is confined to that single context; no synchronization needed.
type Converter struct {
	a, b  byte
	phase uint8 // 0 = need pair, 1 = emit mid, 2 = emit second
	last  byte
}

// Reset prepares the converter for a new playback session.
func (c *Converter) Reset() {
	c.a, c.b = pcm.Silence, pcm.Silence
	c.phase = 0
	c.last = pcm.Silence
}

// Next produces one output level, dequeueing a fresh sample pair every
// third tick. When fewer than two samples remain the pair is never
// split: the previous level is held and the odd tail stays in the ring.
// An empty ring on a pair boundary is a protocol violation surfaced as
// ring.ErrUnderrun.
func (c *Converter) Next(rg *ring.Ring) (byte, error) {
	switch c.phase {
	case 0:
		if rg.Available() < 2 {
			if rg.Available() == 0 {
				return 0, ring.ErrUnderrun
			}
			return c.last, nil
		}

		a, err := rg.Dequeue()
		if err != nil {
			return 0, err
		}
		b, err := rg.Dequeue()
		if err != nil {
			return 0, err
		}

		c.a, c.b = a, b
		c.phase = 1
		c.last = a
		return a, nil

	case 1:
		c.phase = 2
		c.last = pcm.Midpoint(c.a, c.b)
		return c.last, nil

	default:
		c.phase = 0
		c.last = c.b
		return c.b, nil
	}
}
