// SPDX-License-Identifier: EPL-2.0

package device

import (
	"time"

	"github.com/ik5/voxrec/dvr"
)

// Line is one discrete input line, asserted while the button is held.
type Line interface {
	Sample() bool
}

// LineFunc adapts a plain function to a Line.
type LineFunc func() bool

func (f LineFunc) Sample() bool { return f() }

// Debounced turns a noisy line into clean edges: an edge is reported
// only after the line has stayed asserted for the settle duration, and
// not again until the line has been released. The settle wait blocks
// the caller, which is acceptable on the foreground loop and nowhere
// else.
type Debounced struct {
	line    Line
	settle  time.Duration
	pressed bool
}

func NewDebounced(line Line, settle time.Duration) *Debounced {
	return &Debounced{line: line, settle: settle}
}

// Edge samples the line once and reports a new stable assertion.
func (d *Debounced) Edge() bool {
	if !d.line.Sample() {
		d.pressed = false
		return false
	}
	if d.pressed {
		// Still held from the previous edge.
		return false
	}

	// Contact bounce: require the level to survive the settle window.
	time.Sleep(d.settle)
	if !d.line.Sample() {
		return false
	}

	d.pressed = true
	return true
}

// Keypad maps three debounced lines onto the controller's input
// events. It implements dvr.InputSource.
type Keypad struct {
	record *Debounced
	play   *Debounced
	stop   *Debounced
}

func NewKeypad(record, play, stop Line, settle time.Duration) *Keypad {
	return &Keypad{
		record: NewDebounced(record, settle),
		play:   NewDebounced(play, settle),
		stop:   NewDebounced(stop, settle),
	}
}

func (k *Keypad) Poll() dvr.Input {
	switch {
	case k.record.Edge():
		return dvr.InputRecord
	case k.play.Edge():
		return dvr.InputPlay
	case k.stop.Edge():
		return dvr.InputStop
	default:
		return dvr.InputNone
	}
}

// ChanInput adapts a channel of already-clean events (for example
// keyboard input) to dvr.InputSource. Poll never blocks.
type ChanInput struct {
	C chan dvr.Input
}

func NewChanInput() *ChanInput {
	return &ChanInput{C: make(chan dvr.Input, 8)}
}

func (c *ChanInput) Poll() dvr.Input {
	select {
	case ev := <-c.C:
		return ev
	default:
		return dvr.InputNone
	}
}
