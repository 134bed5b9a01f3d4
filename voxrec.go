// SPDX-License-Identifier: EPL-2.0

package voxrec

import (
	"context"
	"log/slog"
	"time"

	"github.com/ik5/voxrec/dvr"
	"github.com/ik5/voxrec/internal/config"
	"github.com/ik5/voxrec/ring"
	"github.com/ik5/voxrec/store"
)

// Options selects the peripherals and storage a Rig is built from.
// Store, Capture and Output are required; the rest default to inert
// implementations. Capture is a constructor because the source feeds
// the rig's ring, which does not exist until New builds it.
type Options struct {
	Store     store.Store
	Capture   func(rg *ring.Ring) (dvr.CaptureSource, error)
	Output    dvr.Output
	Inputs    dvr.InputSource
	Indicator dvr.Indicator
	Config    *config.Config
	Log       *slog.Logger
}

// Rig is a fully wired recorder: ring, recorder, player and
// controller sharing one page stream.
type Rig struct {
	Ring       *ring.Ring
	Recorder   *dvr.Recorder
	Player     *dvr.Player
	Controller *dvr.Controller

	cfg *config.Config
	log *slog.Logger
}

// New wires a Rig. Ring events fan out by kind: filled pages go to
// the recorder, emptied pages to the player; at most one of the two
// has an active session, so the split is unambiguous.
func New(opts Options) (*Rig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	inputs := opts.Inputs
	if inputs == nil {
		inputs = nullInput{}
	}
	ind := opts.Indicator
	if ind == nil {
		ind = nopIndicator{}
	}

	var (
		rec *dvr.Recorder
		pl  *dvr.Player
	)
	rg, err := ring.New(cfg.PageSize, cfg.RingDepth, func(ev ring.Event) {
		switch ev {
		case ring.PageFilled:
			rec.HandleEvent(ev)
		case ring.PageEmptied:
			pl.HandleEvent(ev)
		}
	})
	if err != nil {
		return nil, err
	}

	capture, err := opts.Capture(rg)
	if err != nil {
		return nil, err
	}

	rec = dvr.NewRecorder(rg, opts.Store, capture, cfg.MaxSessionPages(), log)
	pl = dvr.NewPlayer(rg, opts.Store, opts.Output, log)
	ctl := dvr.NewController(rec, pl, inputs, ind, cfg.FileName, cfg.PollInterval(), log)

	return &Rig{
		Ring:       rg,
		Recorder:   rec,
		Player:     pl,
		Controller: ctl,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Run drives the controller until ctx is canceled.
func (r *Rig) Run(ctx context.Context) error {
	return r.Controller.Run(ctx)
}

// RecordOnce records a single session to name and blocks until the
// session cap is reached or ctx is canceled. Cancellation stops the
// recording cleanly, flushing the final page.
func (r *Rig) RecordOnce(ctx context.Context, name string) error {
	if err := r.Recorder.Start(name); err != nil {
		return err
	}

	stopped := false
	for {
		if !stopped && ctx.Err() != nil {
			r.Recorder.RequestStop()
			stopped = true
		}
		done, err := r.Recorder.Service()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		time.Sleep(r.cfg.PollInterval())
	}
}

// PlayOnce plays the stream name to completion, or stops early when
// ctx is canceled.
func (r *Rig) PlayOnce(ctx context.Context, name string) error {
	if err := r.Player.Start(name); err != nil {
		return err
	}

	stopped := false
	for {
		if !stopped && ctx.Err() != nil {
			r.Player.RequestStop()
			stopped = true
		}
		done, err := r.Player.Service()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		time.Sleep(r.cfg.PollInterval())
	}
}

type nullInput struct{}

func (nullInput) Poll() dvr.Input { return dvr.InputNone }

type nopIndicator struct{}

func (nopIndicator) Set(dvr.State) {}
