// SPDX-License-Identifier: EPL-2.0

package dvr

// CaptureSource controls periodic analog sampling into the page ring.
// Once started it produces samples without further software
// intervention. Stop is invoked from the tick context when a session
// reaches its page budget and must therefore be non-blocking.
type CaptureSource interface {
	Start() error
	Stop()
}

// Output controls the periodic playback tick and the emitted level.
// Enable arms tick delivery; onTick then runs once per output tick on
// the device's tick goroutine. Disable disarms delivery and is safe to
// call from inside onTick; it must not block.
type Output interface {
	Enable(onTick func()) error
	Disable()
	SetLevel(level byte)
}

// Indicator mirrors the controller state onto status output lines.
type Indicator interface {
	Set(state State)
}

// Input is a debounced user event from the discrete input lines.
type Input int

const (
	InputNone Input = iota
	InputRecord
	InputPlay
	InputStop
)

func (i Input) String() string {
	switch i {
	case InputNone:
		return "none"
	case InputRecord:
		return "record"
	case InputPlay:
		return "play"
	case InputStop:
		return "stop"
	default:
		return "unknown"
	}
}

// InputSource yields debounced input events. Poll returns InputNone
// when no new event is pending; it runs on the foreground loop and may
// block for the debounce settle time, never longer.
type InputSource interface {
	Poll() Input
}
