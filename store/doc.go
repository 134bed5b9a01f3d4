// SPDX-License-Identifier: EPL-2.0

// Package store persists recorded sessions and feeds playback.
//
// The control core moves whole pages of raw 8-bit samples; this package
// owns the container byte layout. Sessions are stored as 8-bit unsigned
// mono PCM WAV files via github.com/go-audio/wav, so recordings are
// directly playable on a computer.
//
// # Interfaces
//
// Store creates and opens named streams. Writer accepts sequential
// pages; Reader reports the total sample count on open and yields
// sequential pages. Both are strictly sequential, matching the
// recorder's page-streaming protocol — there is no seeking.
//
// All calls run on the foreground loop and may block on file I/O; they
// are never reached from the tick path.
package store
