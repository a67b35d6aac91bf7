// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/soundbind/audio"
	"github.com/ik5/soundbind/utils"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels      = 2
	bytesPerFrame = channels * 2
)

type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec pcmReader
	buf []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	size := (len(dst) / channels) * bytesPerFrame
	if size == 0 {
		return 0, nil
	}
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}

	n, err := io.ReadFull(s.dec, s.buf[:size])
	n -= n % bytesPerFrame
	samples := utils.PCM16LEToFloat32(dst, s.buf[:n])

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3: %w", err)
	}
	return &source{dec: dec}, nil
}
