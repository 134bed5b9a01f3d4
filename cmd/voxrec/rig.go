// SPDX-License-Identifier: EPL-2.0

package main

import (
	"log/slog"
	"math"

	"github.com/ik5/voxrec"
	"github.com/ik5/voxrec/device"
	"github.com/ik5/voxrec/dvr"
	"github.com/ik5/voxrec/internal/config"
	"github.com/ik5/voxrec/pcm"
	"github.com/ik5/voxrec/ring"
	"github.com/ik5/voxrec/store"
)

// buildRig assembles a full rig on either real PortAudio devices or
// the in-process simulators. The returned cleanup releases whatever
// devices were opened.
func buildRig(cfg *config.Config, log *slog.Logger, inputs dvr.InputSource) (*voxrec.Rig, func(), error) {
	st, err := store.NewWavStore(cfg.OutputDir, cfg.SampleRate)
	if err != nil {
		return nil, nil, err
	}

	var (
		out     dvr.Output
		capture func(rg *ring.Ring) (dvr.CaptureSource, error)
		closers []func() error
	)

	if simDevices {
		out = &device.SimOutput{Rate: cfg.TickRate()}
		capture = func(rg *ring.Ring) (dvr.CaptureSource, error) {
			return &device.SimCapture{
				Ring: rg,
				Rate: cfg.SampleRate,
				Wave: testTone(cfg.SampleRate),
				Log:  log,
			}, nil
		}
	} else {
		pout, err := device.NewPAOutput(cfg.TickRate(), log)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pout.Close)
		out = pout

		capture = func(rg *ring.Ring) (dvr.CaptureSource, error) {
			pc, err := device.NewPACapture(rg, cfg.SampleRate, log)
			if err != nil {
				return nil, err
			}
			closers = append(closers, pc.Close)
			return pc, nil
		}
	}

	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Error("close device", "error", err)
			}
		}
	}

	rig, err := voxrec.New(voxrec.Options{
		Store:     st,
		Capture:   capture,
		Output:    out,
		Inputs:    inputs,
		Indicator: &device.LogIndicator{Log: log},
		Config:    cfg,
		Log:       log,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return rig, cleanup, nil
}

// testTone is what the simulated microphone hears: a 440 Hz sine.
func testTone(rate int) func(i int) byte {
	return func(i int) byte {
		v := math.Sin(2 * math.Pi * 440 * float64(i) / float64(rate))
		return pcm.Float32ToU8(float32(v))
	}
}
