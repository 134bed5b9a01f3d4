// SPDX-License-Identifier: EPL-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/voxrec/pcm"
)

// WavStore is a Store backed by WAV files in a single directory.
// Files are written as 8-bit unsigned mono PCM at the capture rate.
type WavStore struct {
	dir        string
	sampleRate int
}

// NewWavStore returns a store rooted at dir. The directory is created
// if missing.
func NewWavStore(dir string, sampleRate int) (*WavStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &WavStore{dir: dir, sampleRate: sampleRate}, nil
}

// SampleRate returns the rate stamped into created containers.
func (s *WavStore) SampleRate() int { return s.sampleRate }

// Path returns the absolute file path for a stream name.
func (s *WavStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *WavStore) Create(name string) (Writer, error) {
	f, err := os.Create(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &wavWriter{
		f:   f,
		enc: wav.NewEncoder(f, s.sampleRate, 8, 1, 1),
	}, nil
}

func (s *WavStore) Open(name string) (Reader, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	r, err := newWavReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

type wavWriter struct {
	f      *os.File
	enc    *wav.Encoder
	buf    audio.IntBuffer
	closed bool
}

func (w *wavWriter) WritePage(page []byte) error {
	if w.closed {
		return ErrClosed
	}

	if cap(w.buf.Data) < len(page) {
		w.buf.Data = make([]int, len(page))
	}
	w.buf.Data = w.buf.Data[:len(page)]
	for i, s := range page {
		w.buf.Data[i] = int(s)
	}
	w.buf.Format = &audio.Format{NumChannels: 1, SampleRate: w.enc.SampleRate}
	w.buf.SourceBitDepth = 8

	if err := w.enc.Write(&w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (w *wavWriter) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("%w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

type wavReader struct {
	f       *os.File
	dec     *wav.Decoder
	buf     audio.IntBuffer
	samples int
	closed  bool
}

func newWavReader(f *os.File) (*wavReader, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.NumChans != 1 || dec.BitDepth != 8 {
		return nil, ErrUnsupportedLayout
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// 8-bit mono: one byte per sample, so the PCM chunk size is the
	// sample count.
	return &wavReader{
		f:       f,
		dec:     dec,
		samples: int(dec.PCMSize),
	}, nil
}

func (r *wavReader) SampleCount() int { return r.samples }

func (r *wavReader) ReadPage(page []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}

	if cap(r.buf.Data) < len(page) {
		r.buf.Data = make([]int, len(page))
	}
	r.buf.Data = r.buf.Data[:len(page)]
	r.buf.Format = &audio.Format{NumChannels: 1, SampleRate: int(r.dec.SampleRate)}

	n, err := r.dec.PCMBuffer(&r.buf)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	for i := 0; i < n; i++ {
		page[i] = byte(r.buf.Data[i])
	}
	// Pad the tail so a partially filled page plays back silent
	for i := n; i < len(page); i++ {
		page[i] = pcm.Silence
	}

	return n, nil
}

func (r *wavReader) Close() error {
	if r.closed {
		return ErrClosed
	}
	r.closed = true

	if err := r.f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
