// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundbind/utils"
)

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved.
// When downsampling, input frames pass through a one-pole low-pass first.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// window[0..3] hold frames t-1, t, t+1, t+2; output is interpolated
	// between window[1] and window[2] at pos.
	window [4][]float32
	filled [4]bool
	pos    float64
	primed bool
	eof    bool

	frame   []float32
	lowPass bool
	state   []float32 // low-pass memory, one value per channel
}

const (
	// lowPassAlpha is the smoothing factor of the anti-aliasing filter.
	lowPassAlpha float32 = 0.5

	// maxEmptyReads bounds how often a source may return nothing without
	// reaching EOF before the resampler gives up.
	maxEmptyReads = 64
)

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowPass:  step > 1.0,
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one frame into r.frame. ok is false once src is drained.
func (r *Resampler) readFrame(filter bool) (ok bool, err error) {
	for range maxEmptyReads {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.frame)
		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("reading source frame: %w", err)
		}
		if n == 0 {
			continue
		}

		if filter {
			for c := range r.channels {
				r.frame[c] = lowPassAlpha*r.frame[c] + (1-lowPassAlpha)*r.state[c]
				r.state[c] = r.frame[c]
			}
		}
		return true, nil
	}
	return false, io.ErrNoProgress
}

func (r *Resampler) prime() error {
	r.primed = true

	// The first frame seeds the filter so there is no fade-in.
	ok, err := r.readFrame(false)
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.window[1], r.frame)
	copy(r.state, r.frame)
	r.filled[1] = true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.readFrame(r.lowPass)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		copy(r.window[i], r.frame)
		r.filled[i] = true
	}
	return nil
}

// advance shifts the window one frame forward.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.filled[:], r.filled[1:])
	r.filled[3] = false

	if !r.filled[1] {
		return io.EOF
	}

	ok, err := r.readFrame(r.lowPass)
	if err != nil {
		return err
	}
	if ok {
		copy(r.window[3], r.frame)
		r.filled[3] = true
	}
	return nil
}

// ReadSamples produces samples at the destination rate. len(dst) must be a
// multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		w := &r.window
		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			y1 := w[1][c]
			y0, y2 := y1, y1
			if r.filled[0] {
				y0 = w[0][c]
			}
			if r.filled[2] {
				y2 = w[2][c]
			}
			y3 := y2
			if r.filled[3] {
				y3 = w[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
