// SPDX-License-Identifier: EPL-2.0

package soundbind

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type intent uint8

const (
	intentNone intent = iota
	intentPlay
	intentStop
)

// generation is one handle load request. Only the Player's current
// generation may install a handle.
type generation struct {
	id      uint64
	cancel  context.CancelFunc
	done    chan struct{}
	settled bool // guarded by Player.mu
	err     error
}

// BindOption configures a Player or Binding.
type BindOption func(*settings)

type settings struct {
	logger  zerolog.Logger
	onError func(error)
}

// WithLogger sets the logger used for lifecycle events. The default
// discards everything.
func WithLogger(logger zerolog.Logger) BindOption {
	return func(s *settings) {
		s.logger = logger
	}
}

// OnLoadError registers fn to receive every *LoadError of the current
// configuration. fn runs on the loading goroutine.
func OnLoadError(fn func(error)) BindOption {
	return func(s *settings) {
		s.onError = fn
	}
}

func newSettings(opts []BindOption) settings {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Player owns one SoundConfig and at most one engine handle built from it.
// It has no knowledge of UI events; Binding adds that on top.
//
// Handle construction runs asynchronously. Play and Stop issued before the
// handle is ready are remembered (last call wins) and applied once it
// installs. A load that completes after Reload or Close is discarded and
// its handle disposed.
type Player struct {
	engine  Engine
	logger  zerolog.Logger
	onError func(error)
	id      string

	mu      sync.Mutex
	config  SoundConfig
	handle  Handle
	gen     uint64
	current *generation
	intent  intent
	closed  bool
}

// NewPlayer validates cfg and starts loading its handle.
func NewPlayer(engine Engine, cfg SoundConfig, opts ...BindOption) (*Player, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := newSettings(opts)
	id := uuid.NewString()
	p := &Player{
		engine:  engine,
		logger:  s.logger.With().Str("sound", id).Logger(),
		onError: s.onError,
		id:      id,
		config:  cfg.clone(),
	}

	p.mu.Lock()
	p.loadLocked()
	p.mu.Unlock()

	return p, nil
}

// ID identifies the player in logs.
func (p *Player) ID() string { return p.id }

// Config returns a copy of the current configuration.
func (p *Player) Config() SoundConfig {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.config.clone()
}

// Loaded reports whether a handle is currently installed.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.handle != nil
}

// Play starts the sound from the beginning.
func (p *Player) Play() {
	p.trigger(intentPlay)
}

// Stop halts the sound.
func (p *Player) Stop() {
	p.trigger(intentStop)
}

func (p *Player) trigger(in intent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	if p.handle == nil {
		// A failed load leaves nothing to wait for.
		if !p.current.settled {
			p.intent = in
		}
		return
	}

	switch in {
	case intentPlay:
		p.handle.Play()
	case intentStop:
		p.handle.Stop()
	}
}

// Reload disposes the current handle and starts loading one for cfg.
// An invalid cfg is rejected before anything is torn down.
func (p *Player) Reload(cfg SoundConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrDestroyed
	}

	err := p.releaseLocked()
	p.config = cfg.clone()
	p.intent = intentNone
	p.loadLocked()

	return err
}

// Close stops and disposes the handle and abandons any pending load.
// Calling Close again does nothing.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.intent = intentNone

	p.logger.Debug().Uint64("generation", p.gen).Msg("closing sound")

	return p.releaseLocked()
}

// Wait blocks until the current configuration finished loading and returns
// its *LoadError, if any. It follows configurations installed while it
// waits and returns ErrDestroyed once the player is closed.
func (p *Player) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		g, closed := p.current, p.closed
		p.mu.Unlock()

		if closed {
			return ErrDestroyed
		}

		select {
		case <-g.done:
		case <-ctx.Done():
			return fmt.Errorf("waiting for sound: %w", ctx.Err())
		}

		if !errors.Is(g.err, errSuperseded) {
			return g.err
		}
	}
}

func (p *Player) loadLocked() {
	p.gen++
	ctx, cancel := context.WithCancel(context.Background())
	g := &generation{
		id:     p.gen,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.current = g

	req := p.config.request()
	p.logger.Debug().
		Uint64("generation", g.id).
		Strs("sources", req.Sources).
		Msg("loading sound")

	go p.resolve(ctx, g, req)
}

func (p *Player) resolve(ctx context.Context, g *generation, req LoadRequest) {
	defer close(g.done)
	defer g.cancel()

	h, err := p.engine.Load(ctx, req)
	if err == nil && h == nil {
		err = errNilHandle
	}

	p.mu.Lock()
	g.settled = true

	if p.closed || p.current != g {
		p.mu.Unlock()

		g.err = errSuperseded
		p.logger.Debug().Uint64("generation", g.id).Msg("discarding stale sound load")
		if h != nil {
			if derr := h.Dispose(); derr != nil {
				p.logger.Warn().Err(derr).Uint64("generation", g.id).Msg("disposing stale sound")
			}
		}
		return
	}

	if err != nil {
		if h != nil {
			_ = h.Dispose()
		}
		p.intent = intentNone
		p.mu.Unlock()

		g.err = &LoadError{Sources: req.Sources, Err: err}
		p.logger.Warn().Err(err).Uint64("generation", g.id).Msg("sound failed to load")
		if p.onError != nil {
			p.onError(g.err)
		}
		return
	}

	p.handle = h
	pending := p.intent
	p.intent = intentNone
	switch pending {
	case intentPlay:
		h.Play()
	case intentStop:
		h.Stop()
	}
	p.mu.Unlock()

	p.logger.Debug().Uint64("generation", g.id).Msg("sound loaded")
}

// releaseLocked cancels the in-flight load and disposes the live handle.
func (p *Player) releaseLocked() error {
	p.current.cancel()

	h := p.handle
	p.handle = nil
	if h == nil {
		return nil
	}

	h.Stop()
	if err := h.Dispose(); err != nil {
		return fmt.Errorf("disposing sound: %w", err)
	}
	return nil
}
