// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio's integer PCM decoders to audio.Source.
package intpcm

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"
)

// ErrBitDepth is returned for sample widths other than 8, 16, 24 or 32.
var ErrBitDepth = errors.New("unsupported bit depth")

// Reader is the part of go-audio's wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads integer PCM from a Reader and scales it to [-1,1).
type Source struct {
	dec      Reader
	rate     int
	channels int
	scale    float32
	buf      *goaudio.IntBuffer
}

// New wraps dec. bitDepth is the stored sample width.
func New(dec Reader, bitDepth int) (*Source, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrBitDepth
	}

	f := dec.Format()
	if f == nil || f.NumChannels <= 0 || f.SampleRate <= 0 {
		return nil, io.ErrUnexpectedEOF
	}

	return &Source{
		dec:      dec,
		rate:     f.SampleRate,
		channels: f.NumChannels,
		scale:    1 / float32(int64(1)<<(bitDepth-1)),
		buf:      &goaudio.IntBuffer{Format: f, SourceBitDepth: bitDepth},
	}, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return n, err
	case n < want:
		return n, io.EOF
	}
	return n, nil
}
