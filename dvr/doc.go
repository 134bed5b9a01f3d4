// SPDX-License-Identifier: EPL-2.0

// Package dvr implements the record/playback control core of the voice
// recorder: the transfer coordinator shared between the tick path and
// the foreground loop, the recorder and player session drivers, the
// 3:2 playback sample-rate converter, and the top-level state machine.
//
// # Contexts
//
// Exactly two execution contexts touch the core. The tick context is
// the goroutine on which the capture source and output peripheral
// deliver their periodic callbacks; it must never block. The foreground
// context is the controller's Run loop; it alone may block, and only on
// storage I/O and input debounce.
//
// Flags and counters crossing the two contexts are single-word atomics
// with one writer context and one clearer context each. There is no
// mutex in the core; the two-context structure is the entire
// concurrency model.
//
// # Sessions
//
// At most one session (recording or playback) is active at a time.
// Stopping is cooperative: a stop request arms the next natural page
// boundary, which finalizes the stream; nothing is truncated mid-page.
package dvr
