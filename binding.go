// SPDX-License-Identifier: EPL-2.0

package soundbind

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// trigger is the listener a Binding attaches for one event. Each attach
// creates a fresh trigger, so a listener left over from an older config can
// be told apart from the current ones.
type trigger struct {
	binding *Binding
	action  func()
}

func (t *trigger) HandleEvent(Event) {
	b := t.binding

	b.mu.Lock()
	defer b.mu.Unlock()

	// The element may have snapshotted its listeners before Update or
	// Destroy detached this one.
	if !b.attachedLocked(t) {
		return
	}
	t.action()
}

type attachment struct {
	event   string
	trigger *trigger
}

// Binding ties a Player to a UI element: the config's PlayEvent starts the
// sound and its StopEvent, when set, stops it.
type Binding struct {
	player *Player
	target EventTarget
	logger zerolog.Logger

	mu        sync.Mutex
	attached  []attachment
	destroyed bool
}

// Bind validates cfg, attaches the trigger listeners to target and starts
// loading the handle. Listeners are in place when Bind returns; the handle
// may arrive later.
func Bind(target EventTarget, engine Engine, cfg SoundConfig, opts ...BindOption) (*Binding, error) {
	if target == nil {
		return nil, ErrNilTarget
	}

	p, err := NewPlayer(engine, cfg, opts...)
	if err != nil {
		return nil, err
	}

	b := &Binding{
		player: p,
		target: target,
		logger: p.logger,
	}

	b.mu.Lock()
	b.attachLocked(cfg)
	b.mu.Unlock()

	return b, nil
}

// ID identifies the binding in logs.
func (b *Binding) ID() string { return b.player.ID() }

func (b *Binding) Target() EventTarget { return b.target }

// Config returns a copy of the current configuration.
func (b *Binding) Config() SoundConfig { return b.player.Config() }

// Loaded reports whether the handle for the current configuration is ready.
func (b *Binding) Loaded() bool { return b.player.Loaded() }

// Wait blocks until the current configuration finished loading. See
// Player.Wait.
func (b *Binding) Wait(ctx context.Context) error { return b.player.Wait(ctx) }

// Play starts the sound, the same as firing PlayEvent.
func (b *Binding) Play() { b.player.Play() }

// Stop halts the sound, the same as firing StopEvent.
func (b *Binding) Stop() { b.player.Stop() }

// Events returns the event types currently listened to.
func (b *Binding) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := make([]string, 0, len(b.attached))
	for _, a := range b.attached {
		events = append(events, a.event)
	}
	return events
}

// Update tears the binding down and rebuilds it for cfg: listeners for the
// old events are removed, the old handle is disposed, then a new handle is
// requested and new listeners are attached. An invalid cfg leaves the
// binding untouched.
func (b *Binding) Update(cfg SoundConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return ErrDestroyed
	}

	b.detachLocked()
	err := b.player.Reload(cfg)
	b.attachLocked(cfg)

	b.logger.Debug().
		Str("play", cfg.PlayEvent).
		Str("stop", cfg.StopEvent).
		Msg("binding updated")

	return err
}

// Destroy stops the sound, removes every listener and disposes the handle.
// It is safe to call more than once.
func (b *Binding) Destroy() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return nil
	}
	b.destroyed = true

	b.detachLocked()
	return b.player.Close()
}

func (b *Binding) attachLocked(cfg SoundConfig) {
	b.attached = append(b.attached, attachment{
		event:   cfg.PlayEvent,
		trigger: &trigger{binding: b, action: b.player.Play},
	})
	if cfg.StopEvent != "" {
		b.attached = append(b.attached, attachment{
			event:   cfg.StopEvent,
			trigger: &trigger{binding: b, action: b.player.Stop},
		})
	}

	for _, a := range b.attached {
		b.target.AddEventListener(a.event, a.trigger)
	}
}

func (b *Binding) detachLocked() {
	for _, a := range b.attached {
		b.target.RemoveEventListener(a.event, a.trigger)
	}
	b.attached = nil
}

func (b *Binding) attachedLocked(t *trigger) bool {
	return slices.ContainsFunc(b.attached, func(a attachment) bool {
		return a.trigger == t
	})
}
