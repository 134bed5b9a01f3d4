// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"encoding/binary"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MPEG-1 Layer III input. The underlying decoder
// always yields 16-bit little-endian stereo frames.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.ReadSeeker) (Source, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return &mp3Source{dec: dec}, nil
}

type mp3Source struct {
	dec *mp3.Decoder
}

func (s *mp3Source) SampleRate() int { return s.dec.SampleRate() }
func (s *mp3Source) Channels() int   { return 2 }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	raw := make([]byte, len(dst)*2)
	n, err := io.ReadFull(s.dec, raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("mp3: read frames: %w", err)
	}
	n -= n % 2

	for i := 0; i < n/2; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		dst[i] = float32(v) / 32768
	}
	return n / 2, nil
}

func (s *mp3Source) Close() error { return nil }
