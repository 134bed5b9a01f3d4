// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/voxrec/pcm"
	"github.com/ik5/voxrec/ring"
)

// paFramesPerBuffer keeps the callback cadence well below one ring
// page so the foreground loop always outruns the hardware.
const paFramesPerBuffer = 64

// PACapture is a microphone capture source on PortAudio. The stream
// runs for the lifetime of the device; Start and Stop only gate
// whether callback samples reach the ring, which keeps Stop safe to
// call from the tick path.
type PACapture struct {
	ring   *ring.Ring
	log    *slog.Logger
	stream *portaudio.Stream
	active atomic.Bool
}

// NewPACapture initializes PortAudio and opens the default mono input
// stream at sampleRate. Call Close to release the device.
func NewPACapture(rg *ring.Ring, sampleRate int, log *slog.Logger) (*PACapture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	c := &PACapture{ring: rg, log: log}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), paFramesPerBuffer, c.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open capture stream: %w", err)
	}
	c.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start capture stream: %w", err)
	}
	return c, nil
}

func (c *PACapture) callback(in []float32) {
	if !c.active.Load() {
		return
	}
	for _, v := range in {
		if err := c.ring.Enqueue(pcm.Float32ToU8(v)); err != nil {
			// Overrun is a session-level fault; the recorder's page
			// budget still terminates the session.
			c.log.Error("capture overrun", "error", err)
			c.active.Store(false)
			return
		}
	}
}

func (c *PACapture) Start() error {
	c.active.Store(true)
	return nil
}

// Stop gates the callback off. Tick-safe.
func (c *PACapture) Stop() {
	c.active.Store(false)
}

// Close stops the stream and releases PortAudio.
func (c *PACapture) Close() error {
	c.active.Store(false)
	if err := c.stream.Stop(); err != nil {
		c.log.Error("stop capture stream", "error", err)
	}
	if err := c.stream.Close(); err != nil {
		c.log.Error("close capture stream", "error", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("terminate portaudio: %w", err)
	}
	return nil
}

// PAOutput is a speaker output peripheral on PortAudio. The stream
// runs continuously and emits silence while disarmed; each output
// frame while armed delivers one tick to the player.
type PAOutput struct {
	log    *slog.Logger
	stream *portaudio.Stream
	armed  atomic.Bool
	onTick atomic.Pointer[func()]
	level  atomic.Uint32
}

// NewPAOutput initializes PortAudio and opens the default mono output
// stream at tickRate. Call Close to release the device.
func NewPAOutput(tickRate int, log *slog.Logger) (*PAOutput, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	o := &PAOutput{log: log}
	o.level.Store(uint32(pcm.Silence))

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(tickRate), paFramesPerBuffer, o.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open output stream: %w", err)
	}
	o.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start output stream: %w", err)
	}
	return o, nil
}

func (o *PAOutput) callback(out []float32) {
	for i := range out {
		if o.armed.Load() {
			if fn := o.onTick.Load(); fn != nil {
				(*fn)()
			}
		}
		out[i] = pcm.U8ToFloat32(byte(o.level.Load()))
	}
}

func (o *PAOutput) Enable(onTick func()) error {
	o.onTick.Store(&onTick)
	o.armed.Store(true)
	return nil
}

// Disable gates tick delivery off. Safe from inside the callback.
func (o *PAOutput) Disable() {
	o.armed.Store(false)
	o.level.Store(uint32(pcm.Silence))
}

func (o *PAOutput) SetLevel(level byte) {
	o.level.Store(uint32(level))
}

// Close stops the stream and releases PortAudio.
func (o *PAOutput) Close() error {
	o.armed.Store(false)
	if err := o.stream.Stop(); err != nil {
		o.log.Error("stop output stream", "error", err)
	}
	if err := o.stream.Close(); err != nil {
		o.log.Error("close output stream", "error", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("terminate portaudio: %w", err)
	}
	return nil
}
