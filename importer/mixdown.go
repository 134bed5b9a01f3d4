// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"
)

// Mono wraps a Source and averages its channels into a single one.
// A source that is already mono is returned unchanged.
func Mono(src Source) Source {
	if src.Channels() <= 1 {
		return src
	}
	return &monoSource{src: src, ch: src.Channels()}
}

type monoSource struct {
	src Source
	ch  int
	buf []float32
}

func (m *monoSource) SampleRate() int { return m.src.SampleRate() }
func (m *monoSource) Channels() int   { return 1 }
func (m *monoSource) Close() error    { return m.src.Close() }

func (m *monoSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * m.ch
	if cap(m.buf) < need {
		m.buf = make([]float32, need)
	}
	buf := m.buf[:need]

	n, err := m.src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	if rem := n % m.ch; rem != 0 {
		return 0, fmt.Errorf("mixdown: %d samples do not align to %d channels", n, m.ch)
	}

	frames := n / m.ch
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < m.ch; c++ {
			sum += buf[f*m.ch+c]
		}
		dst[f] = sum / float32(m.ch)
	}
	return frames, nil
}
