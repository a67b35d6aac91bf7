// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ik5/soundbind/engine"
	"github.com/ik5/soundbind/internal/board"
	"github.com/ik5/soundbind/internal/config"
	"github.com/rs/zerolog"
)

const pumpInterval = 20 * time.Millisecond

// session is an engine plus a board applied from the config file.
type session struct {
	path   string
	cfg    config.Config
	engine *engine.Engine
	board  *board.Board
	logger zerolog.Logger
}

func openSession(path string, logger zerolog.Logger) (*session, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	eng := engine.New(
		engine.WithSampleRate(cfg.Engine.SampleRate),
		engine.WithCacheTTL(cfg.Engine.CacheTTL),
		engine.WithBaseDir(cfg.Engine.BaseDir),
		engine.WithLogger(logger),
	)
	s := &session{
		path:   path,
		cfg:    cfg,
		engine: eng,
		board:  board.New(eng, logger),
		logger: logger,
	}

	if _, err := s.board.Apply(cfg.Elements); err != nil {
		logger.Warn().Err(err).Msg("some elements were not bound")
	}
	return s, nil
}

// reload re-reads the config file and applies its elements. Engine
// settings only take effect on restart.
func (s *session) reload() (board.Changes, error) {
	cfg, err := config.Load(s.path)
	if err != nil {
		return board.Changes{}, err
	}
	if cfg.Engine != s.cfg.Engine {
		s.logger.Warn().Msg("engine settings changed; restart to apply them")
	}
	s.cfg = cfg
	return s.board.Apply(cfg.Elements)
}

// waitLoaded blocks until every sound settled, logging failures.
func (s *session) waitLoaded(ctx context.Context) {
	if err := s.board.Wait(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("some sounds failed to load")
	}
}

func (s *session) Close() error {
	return errors.Join(s.board.Close(), s.engine.Close())
}

type recordFlags struct {
	path     string
	mono     bool
	monoRate int
}

func (f recordFlags) sink(rate int) (engine.Sink, error) {
	if f.path == "" {
		return engine.Discard, nil
	}

	var opts []engine.RecorderOption
	if f.mono {
		opts = append(opts, engine.RecordMono(f.monoRate))
	}
	rec, err := engine.CreateRecorder(f.path, rate, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	return rec, nil
}

// pump runs the engine in real time until ctx is done. The returned
// channel yields Pump's result.
func pump(ctx context.Context, eng *engine.Engine, sink engine.Sink) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- eng.Pump(ctx, sink, pumpInterval)
	}()
	return done
}
