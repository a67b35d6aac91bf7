// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/soundbind"
	"github.com/ik5/soundbind/audio"
	"github.com/ik5/soundbind/formats"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

var (
	_ soundbind.Engine = (*Engine)(nil)
	_ beep.Streamer    = (*Engine)(nil)
	_ io.Closer        = (*Engine)(nil)
)

// Engine decodes sounds into memory and mixes every playing handle into a
// single stereo stream. It never talks to an audio device itself: pull
// frames with Stream, Render or Pump.
type Engine struct {
	rate     int
	registry *audio.Registry
	opener   Opener
	baseDir  string
	ttl      time.Duration
	logger   zerolog.Logger

	buffers *cache.Cache
	// decoding collapses concurrent loads of the same sound.
	decoding singleflight.Group

	// mu guards the mixer and every beep.Ctrl added to it.
	mu    sync.Mutex
	mixer beep.Mixer
}

func New(opts ...Option) *Engine {
	e := &Engine{
		rate:   DefaultSampleRate,
		ttl:    DefaultCacheTTL,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = formats.Default()
	}
	if e.opener == nil {
		e.opener = NewOpener(e.baseDir, nil)
	}

	if e.ttl > 0 {
		e.buffers = cache.New(e.ttl, 2*e.ttl)
	} else {
		e.buffers = cache.New(cache.NoExpiration, 0)
	}

	return e
}

// SampleRate is the rate of the mixed output.
func (e *Engine) SampleRate() int { return e.rate }

func (e *Engine) Format() beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(e.rate), NumChannels: 2, Precision: 2}
}

// Load implements soundbind.Engine. Sources are tried in order and the
// first one that opens and decodes wins.
func (e *Engine) Load(ctx context.Context, req soundbind.LoadRequest) (soundbind.Handle, error) {
	opts, unknown, err := parseOptions(req.Extra)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		e.logger.Debug().Strs("keys", unknown).Msg("ignoring unknown sound options")
	}

	var errs []error
	for _, loc := range req.Sources {
		buf, err := e.buffer(ctx, loc, opts.formats)
		if err == nil {
			h := newHandle(e, buf, req.Loop, req.Volume, opts)
			if opts.autoplay {
				h.Play()
			}
			return h, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("loading sound: %w", ctxErr)
		}
		e.logger.Debug().Err(err).Str("src", displayLocator(loc)).Msg("sound source failed")
		errs = append(errs, fmt.Errorf("%s: %w", displayLocator(loc), err))
	}

	return nil, errors.Join(errs...)
}

func (e *Engine) buffer(ctx context.Context, loc string, hints []string) (*beep.Buffer, error) {
	dec, format, err := e.registry.Lookup(loc, hints...)
	if err != nil {
		return nil, err
	}

	key := format + "\x00" + loc
	for {
		if v, ok := e.buffers.Get(key); ok {
			return v.(*beep.Buffer), nil
		}

		ch := e.decoding.DoChan(key, func() (any, error) {
			return e.decode(ctx, dec, format, loc, key)
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			// A load sharing another caller's decode fails with that
			// caller's cancellation; try again on our own context.
			if r.Shared && isCanceled(r.Err) && ctx.Err() == nil {
				continue
			}
			if r.Err != nil {
				return nil, r.Err
			}
			return r.Val.(*beep.Buffer), nil
		}
	}
}

func (e *Engine) decode(ctx context.Context, dec audio.Decoder, format, loc, key string) (*beep.Buffer, error) {
	rc, err := e.opener.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, err := dec.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	defer src.Close()

	buf, err := decodeBuffer(ctx, src, e.rate)
	if err != nil {
		return nil, err
	}

	e.buffers.SetDefault(key, buf)
	e.logger.Debug().
		Str("src", displayLocator(loc)).
		Str("format", format).
		Dur("length", buf.Format().SampleRate.D(buf.Len())).
		Msg("sound decoded")

	return buf, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Cached returns the number of decoded sounds held in the cache.
func (e *Engine) Cached() int { return e.buffers.ItemCount() }

// Playing returns the number of handles currently mixed.
func (e *Engine) Playing() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mixer.Len()
}

// Stream implements beep.Streamer. It never drains: with nothing playing
// it produces silence.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	n, _ := e.mixer.Stream(samples)
	e.mu.Unlock()

	clear(samples[n:])
	return len(samples), true
}

func (e *Engine) Err() error { return nil }

// Render mixes d worth of frames into sink as fast as possible.
func (e *Engine) Render(sink Sink, d time.Duration) error {
	var frames [512][2]float64

	for left := beep.SampleRate(e.rate).N(d); left > 0; {
		n := min(left, len(frames))
		e.Stream(frames[:n])
		if err := sink.Write(frames[:n]); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
		left -= n
	}
	return nil
}

// Pump feeds sink in real time, one interval of frames per tick, until
// ctx is done or sink fails.
func (e *Engine) Pump(ctx context.Context, sink Sink, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := make([][2]float64, beep.SampleRate(e.rate).N(interval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Stream(frames)
			if err := sink.Write(frames); err != nil {
				return fmt.Errorf("pumping audio: %w", err)
			}
		}
	}
}

// Close silences every handle and drops the cache. Handles stay valid and
// may be played again.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.mixer.Clear()
	e.mu.Unlock()

	e.buffers.Flush()
	return nil
}

func (e *Engine) add(s beep.Streamer) {
	e.mu.Lock()
	e.mixer.Add(s)
	e.mu.Unlock()
}

func (e *Engine) detach(ctrl *beep.Ctrl) {
	e.mu.Lock()
	ctrl.Streamer = nil
	e.mu.Unlock()
}

// displayLocator shortens data URIs for logs and errors.
func displayLocator(loc string) string {
	const limit = 48
	if len(loc) <= limit {
		return loc
	}
	return loc[:limit] + "..."
}
