// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundbind/audio"
)

const maxEmptyReads = 64

// pcmStreamer adapts an audio.Source with one or two channels to
// beep.Streamer. Mono is copied to both sides.
type pcmStreamer struct {
	ctx   context.Context
	src   audio.Source
	buf   []float32
	eof   bool
	empty int
	err   error
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.eof || s.err != nil {
		return 0, false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return 0, false
	}

	ch := s.src.Channels()
	need := len(samples) * ch
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}

	n, err := s.src.ReadSamples(s.buf[:need])
	frames := n / ch
	for i := range frames {
		l := float64(s.buf[i*ch])
		r := l
		if ch > 1 {
			r = float64(s.buf[i*ch+1])
		}
		samples[i] = [2]float64{l, r}
	}

	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		// beep.Buffer drops the samples of a call that reports !ok.
		return frames, frames > 0
	case err != nil:
		s.err = err
		return 0, false
	case frames == 0:
		s.empty++
		if s.empty > maxEmptyReads {
			s.err = io.ErrNoProgress
			return 0, false
		}
	default:
		s.empty = 0
	}
	return frames, true
}

func (s *pcmStreamer) Err() error { return s.err }

// decodeBuffer drains src into a stereo beep.Buffer at rate.
func decodeBuffer(ctx context.Context, src audio.Source, rate int) (*beep.Buffer, error) {
	if src.Channels() < 1 {
		return nil, fmt.Errorf("decoding sound: %d channels", src.Channels())
	}
	if src.Channels() > 2 {
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != rate {
		src = audio.NewResampler(src, rate)
	}

	ps := &pcmStreamer{ctx: ctx, src: src}
	buf := beep.NewBuffer(beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(ps)

	if ps.err != nil {
		return nil, fmt.Errorf("decoding sound: %w", ps.err)
	}
	if buf.Len() == 0 {
		return nil, ErrEmptySound
	}
	return buf, nil
}
