// SPDX-License-Identifier: EPL-2.0

// Package ring implements the bounded page ring that buffers samples
// between the capture/output tick path and the storage path.
//
// The ring holds a fixed number of fixed-size pages. It is strictly
// single-producer/single-consumer: during recording the capture tick
// enqueues samples and the foreground loop checks out full pages for
// storage; during playback the foreground loop checks out free pages to
// fill from storage and the output tick dequeues samples one at a time.
//
// # Edge events
//
// Crossing a page boundary raises an edge event (PageFilled when an
// enqueue completes a page, PageEmptied when a dequeue drains one).
// Events are delivered to the sink registered at construction, on the
// goroutine that crossed the boundary. Sinks run on the tick path and
// must not block.
//
// # Protocol errors
//
// Enqueueing with no free page (ErrOverrun), dequeueing with no full
// page (ErrUnderrun) and double checkout (ErrPageHeld) are protocol
// violations, not recoverable conditions: the session that triggered
// them must be aborted.
package ring
