// SPDX-License-Identifier: EPL-2.0

// Package voxrec assembles a push-button voice recorder from its
// parts: a page ring, a recorder, a player and the controller state
// machine that arbitrates them.
//
// The model is a single-clip dictaphone. Recording captures 8-bit
// mono samples into fixed-size pages and streams them to storage;
// playback streams pages back and expands them 3:2 to the output tick
// rate. One session is active at a time, and a session either runs to
// its cap or is stopped at the next page boundary.
//
// # Quick Start
//
// Build a Rig from a store and a pair of devices, then drive it:
//
//	rig, err := voxrec.New(voxrec.Options{
//		Store: st,
//		Capture: func(rg *ring.Ring) (dvr.CaptureSource, error) {
//			return device.NewPACapture(rg, 15625, log)
//		},
//		Output: out,
//	})
//	if err != nil {
//		// ...
//	}
//	err = rig.Run(ctx)
//
// RecordOnce and PlayOnce run a single session without input polling.
//
// # Packages
//
// The parts are usable on their own:
//
//   - ring: the double-buffered page ring between devices and storage
//   - dvr: recorder, player, sample-rate converter and controller
//   - store: WAV-backed page storage
//   - device: PortAudio and simulated peripherals, input debouncing
//   - importer: pulling WAV/MP3/Vorbis files into the clip slot
//   - pcm: 8-bit sample conversions and interpolation
package voxrec
