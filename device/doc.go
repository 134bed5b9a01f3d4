// SPDX-License-Identifier: EPL-2.0

// Package device provides the hardware collaborators the control core
// drives: capture sources, output peripherals, status indicators and
// debounced input lines.
//
// Two families of implementations are included. The simulated devices
// run on wall-clock tickers and synthetic waveforms, which makes the
// full record/playback loop usable without audio hardware. The
// PortAudio devices bind the same interfaces to real microphone input
// and speaker output via github.com/gordonklaus/portaudio.
//
// All tick-path callbacks honor the core's contract: they never block
// and never perform storage I/O.
package device
