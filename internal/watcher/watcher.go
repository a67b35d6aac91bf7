// SPDX-License-Identifier: EPL-2.0

// Package watcher reports changes to a single file, debounced.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var ErrStarted = errors.New("watcher already started")

type Config struct {
	// Path is the file to watch. Its directory is watched so that editors
	// replacing the file by rename are seen too.
	Path        string
	DebounceDur time.Duration
	Logger      zerolog.Logger
}

func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 100 * time.Millisecond,
		Logger:      zerolog.Nop(),
	}
}

// Watcher sends on Changes once per burst of writes to the file.
type Watcher struct {
	cfg     Config
	name    string
	fsw     *fsnotify.Watcher
	changes chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	done    chan struct{}
	stopped chan struct{}
}

func New(cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving watched path: %w", err)
	}
	cfg.Path = abs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		cfg:     cfg,
		name:    filepath.Base(abs),
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Changes delivers one value per debounced change. Changes that arrive
// while a value is pending are merged into it.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrStarted
	}
	if err := w.fsw.Add(filepath.Dir(w.cfg.Path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.cfg.Path), err)
	}
	w.started = true

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.cfg.Logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("config file event")
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.cfg.Logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.DebounceDur, w.notify)
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Stop ends watching. It is safe to call more than once and without Start.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	started := w.started
	select {
	case <-w.done:
		w.mu.Unlock()
		return nil
	default:
		close(w.done)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	if started {
		<-w.stopped
	}
	return err
}
