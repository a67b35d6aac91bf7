// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const resampleQuality = 4

// voice is one playthrough of a handle.
type voice struct {
	ctrl *beep.Ctrl
	done atomic.Bool
}

// Handle plays one decoded sound on its Engine. Play restarts from the
// beginning; a handle never overlaps with itself.
type Handle struct {
	engine *Engine
	buffer *beep.Buffer
	loop   bool
	volume float64
	speed  float64
	mute   bool

	mu       sync.Mutex
	voice    *voice
	disposed bool
}

func newHandle(e *Engine, buf *beep.Buffer, loop bool, volume float64, opts loadOptions) *Handle {
	return &Handle{
		engine: e,
		buffer: buf,
		loop:   loop,
		volume: volume,
		speed:  opts.speed,
		mute:   opts.mute,
	}
}

func (h *Handle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.disposed {
		return
	}
	h.stopLocked()

	s, err := h.chain()
	if err != nil {
		h.engine.logger.Warn().Err(err).Msg("building sound stream")
		return
	}

	v := &voice{}
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(s, beep.Callback(func() {
		v.done.Store(true)
	}))}
	h.voice = v
	h.engine.add(v.ctrl)
}

func (h *Handle) chain() (beep.Streamer, error) {
	var s beep.Streamer = h.buffer.Streamer(0, h.buffer.Len())
	if h.loop {
		looped, err := beep.Loop2(h.buffer.Streamer(0, h.buffer.Len()))
		if err != nil {
			return nil, err
		}
		s = looped
	}
	if h.speed != 1 {
		s = beep.ResampleRatio(resampleQuality, h.speed, s)
	}
	s = &effects.Gain{Streamer: s, Gain: h.volume - 1}
	if h.mute {
		s = &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return s, nil
}

func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()
}

func (h *Handle) stopLocked() {
	if h.voice == nil {
		return
	}
	h.engine.detach(h.voice.ctrl)
	h.voice = nil
}

// Dispose stops the sound and makes further Play calls no-ops.
func (h *Handle) Dispose() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()
	h.disposed = true
	return nil
}

// Playing reports whether the last Play is still audible.
func (h *Handle) Playing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.voice != nil && !h.voice.done.Load()
}

// Duration is the length of one playthrough at normal speed.
func (h *Handle) Duration() time.Duration {
	return h.buffer.Format().SampleRate.D(h.buffer.Len())
}
