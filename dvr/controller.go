// SPDX-License-Identifier: EPL-2.0

package dvr

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// State is the top-level controller state. Exactly one session may be
// active, and its direction always agrees with the state.
type State int32

const (
	Idle State = iota
	Recording
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return "invalid"
	}
}

// Controller is the foreground state machine selecting recorder,
// player or idle behavior from debounced input events.
type Controller struct {
	rec    *Recorder
	player *Player
	inputs InputSource
	ind    Indicator
	log    *slog.Logger

	// stream is the container name every session records to and plays
	// from; one mono stream is active at a time.
	stream string

	poll  time.Duration
	state atomic.Int32
}

// NewController assembles the state machine. poll is the foreground
// loop cadence; it must stay well below the page-fill period so the
// tick side never starves.
func NewController(rec *Recorder, player *Player, inputs InputSource, ind Indicator, stream string, poll time.Duration, log *slog.Logger) *Controller {
	c := &Controller{
		rec:    rec,
		player: player,
		inputs: inputs,
		ind:    ind,
		log:    log,
		stream: stream,
		poll:   poll,
	}
	c.state.Store(int32(Idle))
	return c
}

// State reports the current controller state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	c.state.Store(int32(s))
	if c.ind != nil {
		c.ind.Set(s)
	}
}

// Run executes the foreground loop until the context is cancelled. Any
// active session is stopped cooperatively on the way out.
func (c *Controller) Run(ctx context.Context) error {
	c.setState(Idle)

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		default:
		}

		c.Step()
		time.Sleep(c.poll)
	}
}

// Step runs a single foreground iteration: one input poll and one
// service dispatch. Exposed so tests and one-shot commands can drive
// the machine without the wall-clock loop.
func (c *Controller) Step() {
	if in := c.inputs.Poll(); in != InputNone {
		c.handleInput(in)
	}
	c.service()
}

func (c *Controller) handleInput(in Input) {
	switch c.State() {
	case Idle:
		switch in {
		case InputRecord:
			if err := c.rec.Start(c.stream); err != nil {
				c.log.Error("cannot start recording", "error", err)
				return
			}
			c.setState(Recording)
		case InputPlay:
			if err := c.player.Start(c.stream); err != nil {
				c.log.Error("cannot start playback", "error", err)
				return
			}
			c.setState(Playing)
		}

	case Recording:
		if in == InputStop {
			// State holds until the recorder observes completion.
			c.rec.RequestStop()
		}

	case Playing:
		if in == InputStop {
			c.player.RequestStop()
		}
	}
}

func (c *Controller) service() {
	switch c.State() {
	case Idle:
		// Nothing to service.

	case Recording:
		done, err := c.rec.Service()
		if err != nil {
			c.log.Error("recording aborted", "error", err)
		}
		if done {
			c.setState(Idle)
		}

	case Playing:
		done, err := c.player.Service()
		if err != nil {
			c.log.Error("playback aborted", "error", err)
		}
		if done {
			c.setState(Idle)
		}

	default:
		// Unreachable through the typed transitions; kept as the loud
		// fallback the protocol demands.
		c.log.Error("controller in invalid state, forcing idle", "state", c.state.Load())
		c.setState(Idle)
	}
}

func (c *Controller) shutdown() {
	switch c.State() {
	case Recording:
		c.rec.Abort()
	case Playing:
		c.player.Abort()
	}
	c.setState(Idle)
}
