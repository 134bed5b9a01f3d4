// SPDX-License-Identifier: EPL-2.0

package importer

import (
	"io"
	"strings"
	"sync"
)

// Source yields interleaved float32 samples in [-1, 1]. When n == 0
// with err == io.EOF the stream is finished.
type Source interface {
	SampleRate() int
	Channels() int
	ReadSamples(dst []float32) (n int, err error)
	Close() error
}

// Decoder constructs a Source from seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry maps format keys (file extensions) to decoders.
type Registry struct {
	mtx    sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register binds a decoder to a format key. The key is matched
// case-insensitively with any leading dot stripped.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.codecs[normalize(format)] = d
}

func (r *Registry) Lookup(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	d, ok := r.codecs[normalize(format)]
	return d, ok
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("wav", WavDecoder{})
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})
	r.Register("oga", VorbisDecoder{})
	r.Register("aiff", AiffDecoder{})
	r.Register("aif", AiffDecoder{})
	return r
}()

// DefaultRegistry holds the built-in decoders, keyed by extension.
func DefaultRegistry() *Registry { return defaultRegistry }
