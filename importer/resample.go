// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"

	"github.com/ik5/voxrec/pcm"
)

// Resample wraps a mono Source and converts it to dstRate using
// Catmull-Rom interpolation over a sliding four-sample window. A
// source already at dstRate is returned unchanged.
func Resample(src Source, dstRate int) (Source, error) {
	if src.Channels() != 1 {
		return nil, fmt.Errorf("resample: source has %d channels, want mono", src.Channels())
	}
	if dstRate <= 0 {
		return nil, fmt.Errorf("resample: invalid target rate %d", dstRate)
	}
	if src.SampleRate() == dstRate {
		return src, nil
	}
	return &resampler{
		src:   src,
		rate:  dstRate,
		ratio: float64(src.SampleRate()) / float64(dstRate),
	}, nil
}

type resampler struct {
	src   Source
	rate  int
	ratio float64

	win    [4]float32
	have   [4]bool
	pos    float64
	primed bool
	eof    bool
}

func (r *resampler) SampleRate() int { return r.rate }
func (r *resampler) Channels() int   { return 1 }
func (r *resampler) Close() error    { return r.src.Close() }

func (r *resampler) ReadSamples(dst []float32) (int, error) {
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
		r.primed = true
	}

	n := 0
	for n < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return n, err
			}
		}
		if !r.have[1] || !r.have[2] {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}

		y0, y3 := r.win[0], r.win[3]
		if !r.have[0] {
			y0 = r.win[1]
		}
		if !r.have[3] {
			y3 = r.win[2]
		}
		dst[n] = pcm.CubicInterpolate(y0, r.win[1], r.win[2], y3, float32(r.pos))
		n++
		r.pos += r.ratio
	}
	return n, nil
}

// prime loads the first two real samples into the middle of the
// window so output starts exactly at the first input sample.
func (r *resampler) prime() error {
	for i := 1; i < 4; i++ {
		v, ok, err := r.fetch()
		if err != nil {
			return err
		}
		r.win[i], r.have[i] = v, ok
	}
	return nil
}

func (r *resampler) shift() error {
	r.win[0], r.have[0] = r.win[1], r.have[1]
	r.win[1], r.have[1] = r.win[2], r.have[2]
	r.win[2], r.have[2] = r.win[3], r.have[3]
	v, ok, err := r.fetch()
	if err != nil {
		return err
	}
	r.win[3], r.have[3] = v, ok
	return nil
}

func (r *resampler) fetch() (float32, bool, error) {
	if r.eof {
		return 0, false, nil
	}
	var one [1]float32
	n, err := r.src.ReadSamples(one[:])
	if n == 1 {
		return one[0], true, nil
	}
	if err == nil || err == io.EOF {
		r.eof = true
		return 0, false, nil
	}
	return 0, false, err
}
