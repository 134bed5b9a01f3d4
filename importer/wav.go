// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavDecoder decodes PCM WAV input.
type WavDecoder struct{}

func (WavDecoder) Decode(r io.ReadSeeker) (Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: %w", ErrNotPCM)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav: seek to data: %w", err)
	}

	return &wavSource{
		dec:  dec,
		rate: int(dec.SampleRate),
		ch:   int(dec.NumChans),
		buf:  &audio.IntBuffer{Data: make([]int, 2048)},
	}, nil
}

type wavSource struct {
	dec  *wav.Decoder
	rate int
	ch   int
	buf  *audio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Channels() int   { return s.ch }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(s.buf.Data) > len(dst) {
		s.buf.Data = s.buf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav: read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	bits := s.buf.SourceBitDepth
	if bits == 0 {
		bits = int(s.dec.BitDepth)
	}
	for i := 0; i < n; i++ {
		dst[i] = normalizeInt(s.buf.Data[i], bits)
	}
	return n, nil
}

func (s *wavSource) Close() error { return nil }

// normalizeInt maps an integer sample of the given bit depth onto
// [-1, 1]. 8-bit WAV data is unsigned, wider widths are signed.
func normalizeInt(v, bits int) float32 {
	if bits == 8 {
		return (float32(v) - 128) / 128
	}
	return float32(v) / float32(int64(1)<<(bits-1))
}
