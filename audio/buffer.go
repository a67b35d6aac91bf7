// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource replays interleaved samples held in memory.
type BufferSource struct {
	rate     int
	channels int
	samples  []float32
	off      int
}

// NewBufferSource wraps samples, which must hold whole frames of channels
// values each. The slice is not copied.
func NewBufferSource(rate, channels int, samples []float32) *BufferSource {
	return &BufferSource{
		rate:     rate,
		channels: channels,
		samples:  samples,
	}
}

func (b *BufferSource) SampleRate() int { return b.rate }
func (b *BufferSource) Channels() int   { return b.channels }
func (b *BufferSource) Close() error    { return nil }

func (b *BufferSource) ReadSamples(dst []float32) (int, error) {
	if b.off >= len(b.samples) {
		return 0, io.EOF
	}

	n := copy(dst, b.samples[b.off:])
	b.off += n
	if b.off >= len(b.samples) {
		return n, io.EOF
	}
	return n, nil
}
