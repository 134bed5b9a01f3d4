// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ik5/voxrec/pcm"
	"github.com/ik5/voxrec/store"
)

// Importer converts external audio files into recorder streams.
type Importer struct {
	registry *Registry
	store    store.Store
	rate     int
	pageSize int
	log      *slog.Logger
}

// New builds an importer writing streams at rate samples per second in
// pages of pageSize bytes, matching what the recorder itself produces.
func New(st store.Store, rate, pageSize int, log *slog.Logger) *Importer {
	return &Importer{
		registry: DefaultRegistry(),
		store:    st,
		rate:     rate,
		pageSize: pageSize,
		log:      log,
	}
}

// Import decodes the file at path and writes it to the store under
// name. The decoder is picked by file extension. It returns the number
// of samples written.
func (im *Importer) Import(path, name string) (int, error) {
	ext := filepath.Ext(path)
	dec, ok := im.registry.Lookup(ext)
	if !ok {
		return 0, fmt.Errorf("import %q: %w", ext, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	defer src.Close()

	im.log.Info("importing audio",
		"path", path,
		"rate", src.SampleRate(),
		"channels", src.Channels(),
	)

	return im.write(src, name)
}

// write runs the shared tail of the pipeline: mix down, resample,
// quantize, page out.
func (im *Importer) write(src Source, name string) (int, error) {
	rs, err := Resample(Mono(src), im.rate)
	if err != nil {
		return 0, err
	}

	w, err := im.store.Create(name)
	if err != nil {
		return 0, fmt.Errorf("import: create stream: %w", err)
	}

	var (
		total int
		buf   = make([]float32, im.pageSize)
		page  = make([]byte, im.pageSize)
	)
	for {
		n, rerr := readFull(rs, buf)
		for i := 0; i < n; i++ {
			page[i] = pcm.Float32ToU8(buf[i])
		}
		if n > 0 {
			if werr := w.WritePage(page[:n]); werr != nil {
				w.Close()
				return total, fmt.Errorf("import: write page: %w", werr)
			}
			total += n
		}
		if rerr != nil {
			if rerr != io.EOF {
				w.Close()
				return total, fmt.Errorf("import: decode: %w", rerr)
			}
			break
		}
	}

	if err := w.Close(); err != nil {
		return total, fmt.Errorf("import: close stream: %w", err)
	}
	if total == 0 {
		return 0, ErrEmptyInput
	}

	im.log.Info("import complete", "stream", name, "samples", total)
	return total, nil
}

// readFull fills dst from src across short reads. A non-nil error
// means the source is exhausted or failed; n samples are still valid.
func readFull(src Source, dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		m, err := src.ReadSamples(dst[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
