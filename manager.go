// SPDX-License-Identifier: EPL-2.0

package soundbind

import (
	"errors"
	"sync"
)

// Manager keeps the element to binding side-table. Its Attach, Update and
// Detach map onto a UI framework's element attached, parameters changed
// and element detached hooks; Play and Stop give imperative callers access
// to an element's sound without touching the element itself.
//
// Targets are used as map keys and must be comparable, which in practice
// means pointer types.
type Manager struct {
	engine Engine
	opts   []BindOption

	mu       sync.Mutex
	bindings map[EventTarget]*Binding
}

// NewManager returns a Manager that binds every element with engine and
// opts.
func NewManager(engine Engine, opts ...BindOption) *Manager {
	return &Manager{
		engine:   engine,
		opts:     opts,
		bindings: make(map[EventTarget]*Binding),
	}
}

// Attach binds target with cfg.
func (m *Manager) Attach(target EventTarget, cfg SoundConfig) (*Binding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[target]; ok {
		return nil, ErrAlreadyBound
	}

	b, err := Bind(target, m.engine, cfg, m.opts...)
	if err != nil {
		return nil, err
	}
	m.bindings[target] = b

	return b, nil
}

// Update rebuilds target's binding for cfg.
func (m *Manager) Update(target EventTarget, cfg SoundConfig) error {
	b, ok := m.Lookup(target)
	if !ok {
		return ErrNotBound
	}
	return b.Update(cfg)
}

// Detach destroys target's binding and forgets it.
func (m *Manager) Detach(target EventTarget) error {
	m.mu.Lock()
	b, ok := m.bindings[target]
	delete(m.bindings, target)
	m.mu.Unlock()

	if !ok {
		return ErrNotBound
	}
	return b.Destroy()
}

func (m *Manager) Lookup(target EventTarget) (*Binding, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bindings[target]
	return b, ok
}

// Play starts target's sound. It reports false when target is not bound.
func (m *Manager) Play(target EventTarget) bool {
	b, ok := m.Lookup(target)
	if ok {
		b.Play()
	}
	return ok
}

// Stop halts target's sound. It reports false when target is not bound.
func (m *Manager) Stop(target EventTarget) bool {
	b, ok := m.Lookup(target)
	if ok {
		b.Stop()
	}
	return ok
}

// Len returns the number of bound elements.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bindings)
}

// Close destroys every binding.
func (m *Manager) Close() error {
	m.mu.Lock()
	bindings := m.bindings
	m.bindings = make(map[EventTarget]*Binding)
	m.mu.Unlock()

	var errs []error
	for _, b := range bindings {
		if err := b.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
