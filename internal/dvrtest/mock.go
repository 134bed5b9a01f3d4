// SPDX-License-Identifier: EPL-2.0

// Package dvrtest provides deterministic test doubles for the recorder
// core: hand-cranked capture and output devices, an in-memory storage
// implementation, scripted input sources and waveform generators.
// Nothing here uses timers; tests advance the tick path explicitly.
package dvrtest

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/voxrec/dvr"
	"github.com/ik5/voxrec/pcm"
	"github.com/ik5/voxrec/ring"
	"github.com/ik5/voxrec/store"
)

// Waveform generates the unsigned 8-bit sample at index i.
type Waveform func(i int) byte

// SineWave returns a waveform oscillating around the silence level.
func SineWave(sampleRate int, frequency float64) Waveform {
	return func(i int) byte {
		t := float64(i) / float64(sampleRate)
		return pcm.Float32ToU8(float32(math.Sin(2 * math.Pi * frequency * t)))
	}
}

// ConstantWave returns a waveform pinned to one level.
func ConstantWave(level byte) Waveform {
	return func(int) byte { return level }
}

// RampWave counts upward through the 8-bit range, wrapping. Handy for
// asserting sample order end to end.
func RampWave() Waveform {
	return func(i int) byte { return byte(i) }
}

// Capture is a hand-cranked capture source: tests pump samples into
// the ring explicitly instead of running a clock.
type Capture struct {
	Ring *ring.Ring
	Wave Waveform

	started atomic.Bool
	next    int

	// PumpErr records the first enqueue failure, if any.
	PumpErr error
}

func (c *Capture) Start() error {
	c.started.Store(true)
	return nil
}

func (c *Capture) Stop() {
	c.started.Store(false)
}

// Started reports whether the source is currently running.
func (c *Capture) Started() bool { return c.started.Load() }

// Pump enqueues up to n samples, stopping early if the source has been
// stopped by the tick path or the ring rejects a sample. It returns
// the number actually enqueued.
func (c *Capture) Pump(n int) int {
	pumped := 0
	for k := 0; k < n; k++ {
		if !c.started.Load() {
			break
		}
		if err := c.Ring.Enqueue(c.Wave(c.next)); err != nil {
			if c.PumpErr == nil {
				c.PumpErr = err
			}
			break
		}
		c.next++
		pumped++
	}
	return pumped
}

// Output is a hand-cranked output peripheral recording every emitted
// level. Tests advance playback by calling Tick.
type Output struct {
	mu      sync.Mutex
	onTick  func()
	enabled bool
	levels  []byte
}

func (o *Output) Enable(onTick func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onTick = onTick
	o.enabled = true
	return nil
}

func (o *Output) Disable() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = false
}

func (o *Output) SetLevel(level byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.levels = append(o.levels, level)
}

// Enabled reports whether tick delivery is armed.
func (o *Output) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// Tick delivers up to n ticks, stopping when the device is disarmed.
// It returns the number delivered.
func (o *Output) Tick(n int) int {
	delivered := 0
	for k := 0; k < n; k++ {
		o.mu.Lock()
		fn, ok := o.onTick, o.enabled
		o.mu.Unlock()
		if !ok {
			break
		}
		fn()
		delivered++
	}
	return delivered
}

// Levels returns a copy of every level emitted so far.
func (o *Output) Levels() []byte {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]byte, len(o.levels))
	copy(out, o.levels)
	return out
}

// Indicator records the controller states it was shown.
type Indicator struct {
	mu     sync.Mutex
	states []dvr.State
}

func (i *Indicator) Set(s dvr.State) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.states = append(i.states, s)
}

// Last returns the most recently shown state.
func (i *Indicator) Last() dvr.State {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.states) == 0 {
		return dvr.Idle
	}
	return i.states[len(i.states)-1]
}

// ScriptedInput replays a fixed sequence of input events, then reports
// InputNone forever.
type ScriptedInput struct {
	Events []dvr.Input
	pos    int
}

func (s *ScriptedInput) Poll() dvr.Input {
	if s.pos >= len(s.Events) {
		return dvr.InputNone
	}
	ev := s.Events[s.pos]
	s.pos++
	return ev
}

// Push appends an event to the script.
func (s *ScriptedInput) Push(ev dvr.Input) {
	s.Events = append(s.Events, ev)
}

// MemStore is an in-memory store.Store. Streams persist across
// create/open cycles within one test.
type MemStore struct {
	mu      sync.Mutex
	streams map[string][]byte

	// Fault injection: when non-nil, the corresponding operation fails.
	CreateErr error
	OpenErr   error
	WriteErr  error
	ReadErr   error
}

func NewMemStore() *MemStore {
	return &MemStore{streams: make(map[string][]byte)}
}

// Samples returns a copy of the stored stream, or nil when absent.
func (m *MemStore) Samples(name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.streams[name]
	if !ok {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

// Put seeds a stream directly, bypassing the writer path.
func (m *MemStore) Put(name string, samples []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams[name] = append([]byte(nil), samples...)
}

func (m *MemStore) Create(name string) (store.Writer, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.mu.Lock()
	m.streams[name] = nil
	m.mu.Unlock()
	return &memWriter{store: m, name: name}, nil
}

func (m *MemStore) Open(name string) (store.Reader, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	m.mu.Lock()
	data, ok := m.streams[name]
	m.mu.Unlock()
	if !ok {
		return nil, store.ErrNotWavFile
	}
	return &memReader{store: m, data: append([]byte(nil), data...)}, nil
}

type memWriter struct {
	store *MemStore
	name  string
}

func (w *memWriter) WritePage(page []byte) error {
	if w.store.WriteErr != nil {
		return w.store.WriteErr
	}
	w.store.mu.Lock()
	w.store.streams[w.name] = append(w.store.streams[w.name], page...)
	w.store.mu.Unlock()
	return nil
}

func (w *memWriter) Close() error { return nil }

type memReader struct {
	store *MemStore
	data  []byte
	pos   int
}

func (r *memReader) SampleCount() int { return len(r.data) }

func (r *memReader) ReadPage(page []byte) (int, error) {
	if r.store.ReadErr != nil {
		return 0, r.store.ReadErr
	}
	n := copy(page, r.data[r.pos:])
	r.pos += n
	for i := n; i < len(page); i++ {
		page[i] = pcm.Silence
	}
	return n, nil
}

func (r *memReader) Close() error { return nil }
