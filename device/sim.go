// SPDX-License-Identifier: EPL-2.0

package device

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/voxrec/dvr"
	"github.com/ik5/voxrec/ring"
)

// batchInterval is the wall-clock granularity of the simulated
// devices. Per-sample timers are hopeless at audio rates; the
// simulators instead deliver a burst of samples or ticks every
// interval, which preserves the core's page-level timing.
const batchInterval = time.Millisecond

// SimCapture is a simulated capture source feeding a synthetic
// waveform into the ring at the configured sample rate.
type SimCapture struct {
	Ring *ring.Ring
	Rate int
	Wave func(i int) byte
	Log  *slog.Logger

	running atomic.Bool
	gen     atomic.Uint64
	wg      sync.WaitGroup
}

func (s *SimCapture) Start() error {
	gen := s.gen.Add(1)
	s.running.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(batchInterval)
		defer ticker.Stop()

		perBatch := s.Rate * int(batchInterval) / int(time.Second)
		if perBatch < 1 {
			perBatch = 1
		}

		i := 0
		for range ticker.C {
			for j := 0; j < perBatch; j++ {
				if !s.running.Load() || s.gen.Load() != gen {
					return
				}
				if err := s.Ring.Enqueue(s.Wave(i)); err != nil {
					s.Log.Error("capture overrun", "error", err)
					return
				}
				i++
			}
		}
	}()
	return nil
}

// Stop ceases sample production. Tick-safe: it only flips a flag.
func (s *SimCapture) Stop() {
	s.running.Store(false)
}

// Wait blocks until the producer goroutine has exited. Foreground only.
func (s *SimCapture) Wait() {
	s.wg.Wait()
}

// SimOutput is a simulated output peripheral ticking at the configured
// rate and discarding levels (or mirroring them to a hook).
type SimOutput struct {
	Rate int
	// OnLevel, when set, observes every emitted level.
	OnLevel func(level byte)

	armed atomic.Bool
	gen   atomic.Uint64
	wg    sync.WaitGroup
	level atomic.Uint32
}

func (s *SimOutput) Enable(onTick func()) error {
	// Bumping the generation retires any ticker goroutine left over
	// from a previous session, even across a fast disable/enable.
	gen := s.gen.Add(1)
	s.armed.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(batchInterval)
		defer ticker.Stop()

		perBatch := s.Rate * int(batchInterval) / int(time.Second)
		if perBatch < 1 {
			perBatch = 1
		}

		for range ticker.C {
			for j := 0; j < perBatch; j++ {
				if !s.armed.Load() || s.gen.Load() != gen {
					return
				}
				onTick()
			}
		}
	}()
	return nil
}

// Disable disarms tick delivery. Tick-safe: it only flips a flag; the
// ticker goroutine drains on its next iteration.
func (s *SimOutput) Disable() {
	s.armed.Store(false)
}

func (s *SimOutput) SetLevel(level byte) {
	s.level.Store(uint32(level))
	if s.OnLevel != nil {
		s.OnLevel(level)
	}
}

// Level returns the most recent output level.
func (s *SimOutput) Level() byte {
	return byte(s.level.Load())
}

// Wait blocks until the tick goroutine has exited. Foreground only.
func (s *SimOutput) Wait() {
	s.wg.Wait()
}

// LogIndicator mirrors controller state to the structured log, the
// simulated stand-in for the status lines.
type LogIndicator struct {
	Log *slog.Logger
}

func (l *LogIndicator) Set(state dvr.State) {
	l.Log.Info("state", "state", state.String())
}
