// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundbind/audio"
	"github.com/ik5/soundbind/formats/wav"
	"github.com/ik5/soundbind/utils"
)

// Sink consumes mixed stereo frames.
type Sink interface {
	Write(frames [][2]float64) error
	Close() error
}

type discard struct{}

func (discard) Write([][2]float64) error { return nil }
func (discard) Close() error             { return nil }

// Discard drops every frame.
var Discard Sink = discard{}

type RecorderOption func(*Recorder)

// RecordMono folds the recording to one channel at rate. A rate of 0 keeps
// the engine rate. Mono recordings are held in memory and written on Close.
func RecordMono(rate int) RecorderOption {
	return func(r *Recorder) {
		r.mono = true
		r.monoRate = rate
	}
}

// Recorder writes the frames it receives as 16-bit PCM WAV.
type Recorder struct {
	w     io.WriteSeeker
	owned io.Closer
	rate  int

	mono     bool
	monoRate int
	pending  []float32

	enc    *gowav.Encoder
	ints   *goaudio.IntBuffer
	frames int
	closed bool
}

// NewRecorder records to w at rate. w must stay open until Close.
func NewRecorder(w io.WriteSeeker, rate int, opts ...RecorderOption) *Recorder {
	r := &Recorder{w: w, rate: rate}
	for _, opt := range opts {
		opt(r)
	}
	if r.monoRate <= 0 {
		r.monoRate = rate
	}

	if !r.mono {
		r.enc = gowav.NewEncoder(w, rate, 16, 2, 1)
		r.ints = &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 2, SampleRate: rate},
			SourceBitDepth: 16,
		}
	}
	return r
}

// CreateRecorder creates path and records to it. Close closes the file.
func CreateRecorder(path string, rate int, opts ...RecorderOption) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	r := NewRecorder(f, rate, opts...)
	r.owned = f
	return r, nil
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int { return r.frames }

func (r *Recorder) Write(frames [][2]float64) error {
	if r.closed {
		return os.ErrClosed
	}
	r.frames += len(frames)

	if r.mono {
		for _, f := range frames {
			r.pending = append(r.pending, float32(f[0]), float32(f[1]))
		}
		return nil
	}

	r.ints.Data = r.ints.Data[:0]
	for _, f := range frames {
		r.ints.Data = append(r.ints.Data,
			int(utils.Float32ToInt16(float32(f[0]))),
			int(utils.Float32ToInt16(float32(f[1]))))
	}
	if err := r.enc.Write(r.ints); err != nil {
		return fmt.Errorf("writing recording: %w", err)
	}
	return nil
}

// Close finishes the WAV header. It is safe to call more than once.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.mono {
		err = r.flushMono()
	} else {
		err = r.enc.Close()
	}
	if r.owned != nil {
		err = errors.Join(err, r.owned.Close())
	}
	if err != nil {
		return fmt.Errorf("closing recording: %w", err)
	}
	return nil
}

func (r *Recorder) flushMono() error {
	src := audio.NewBufferSource(r.rate, 2, r.pending)
	pcm, err := audio.ResampleToMono16(src, r.monoRate, 4096)
	if err != nil {
		return err
	}
	r.pending = nil
	return wav.WriteWAV16(r.w, r.monoRate, pcm)
}
