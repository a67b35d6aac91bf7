// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
)

// Source is a stream of interleaved float32 PCM in [-1,1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst and returns the number of float32 values
	// written, not frames. n == 0 with io.EOF ends the stream.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys ("wav", "mp3", "ogg", ...) to decoders.
type Registry struct {
	mtx    sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
	}
}

// Register adds d under format and every alias.
func (r *Registry) Register(format string, d Decoder, aliases ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, a := range aliases {
		r.codecs[a] = d
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered keys, aliases included, sorted.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Lookup picks the decoder for locator. Each entry of formats is tried
// first, in order; when none matches, the format guessed from the locator
// itself is used. The chosen key is returned with the decoder.
func (r *Registry) Lookup(locator string, formats ...string) (Decoder, string, error) {
	for _, f := range formats {
		if d, ok := r.Get(f); ok {
			return d, f, nil
		}
	}

	f := FormatOf(locator)
	if f == "" {
		return nil, "", ErrUnknownFormat
	}
	d, ok := r.Get(f)
	if !ok {
		return nil, f, ErrUnknownFormat
	}
	return d, f, nil
}
