// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// AiffDecoder decodes 16-bit PCM AIFF input.
type AiffDecoder struct{}

func (AiffDecoder) Decode(r io.ReadSeeker) (Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("aiff: %w", ErrNotPCM)
	}

	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("aiff: %d-bit samples: %w", dec.BitDepth, ErrNotPCM)
	}
	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("aiff: no format chunk: %w", ErrNotPCM)
	}

	return &aiffSource{
		dec:  dec,
		rate: format.SampleRate,
		ch:   format.NumChannels,
		buf:  &audio.IntBuffer{Data: make([]int, 2048), Format: format},
	}, nil
}

type aiffSource struct {
	dec  *aiff.Decoder
	rate int
	ch   int
	buf  *audio.IntBuffer
}

func (s *aiffSource) SampleRate() int { return s.rate }
func (s *aiffSource) Channels() int   { return s.ch }

func (s *aiffSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(s.buf.Data) > len(dst) {
		s.buf.Data = s.buf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("aiff: read pcm: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		dst[i] = normalizeInt(s.buf.Data[i], 16)
	}
	return n, nil
}

func (s *aiffSource) Close() error { return nil }
