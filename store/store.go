// SPDX-License-Identifier: EPL-2.0

package store

// Writer accepts sequential pages of raw 8-bit samples for one
// recording session.
type Writer interface {
	// WritePage appends one page. The page is fully owned by the
	// writer for the duration of the call only.
	WritePage(page []byte) error
	// Close finalizes the container.
	Close() error
}

// Reader yields sequential pages of a stored session.
type Reader interface {
	// SampleCount reports the total number of stored samples.
	SampleCount() int
	// ReadPage fills page with the next samples and returns how many
	// were read. A short read means end of stream; the remainder of
	// the page is set to the silence level.
	ReadPage(page []byte) (int, error)
	// Close releases the container.
	Close() error
}

// Store creates and opens named sample streams.
type Store interface {
	Create(name string) (Writer, error)
	Open(name string) (Reader, error)
}
