// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis input.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.ReadSeeker) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	return &vorbisSource{dec: dec}, nil
}

type vorbisSource struct {
	dec *oggvorbis.Reader
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	// The reader only returns whole frames; trim the request so a
	// partial frame never straddles two reads.
	if ch := s.dec.Channels(); len(dst) >= ch {
		dst = dst[:len(dst)-len(dst)%ch]
	}
	n, err := s.dec.Read(dst)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("vorbis: read samples: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *vorbisSource) Close() error { return nil }
