// SPDX-License-Identifier: EPL-2.0

// Package dom provides a minimal in-process UI element that can carry
// soundbind listeners. It stands in for a real widget in tests, the CLI and
// the terminal board.
package dom

import (
	"slices"
	"sort"
	"sync"

	"github.com/ik5/soundbind"
)

// Node is a named element with DOM style event listeners.
type Node struct {
	id string

	mu        sync.Mutex
	listeners map[string][]soundbind.EventListener
}

var _ soundbind.EventTarget = (*Node)(nil)

func New(id string) *Node {
	return &Node{
		id:        id,
		listeners: make(map[string][]soundbind.EventListener),
	}
}

func (n *Node) ID() string { return n.id }

// AddEventListener registers l for typ. Adding the same listener twice for
// the same type has no effect.
func (n *Node) AddEventListener(typ string, l soundbind.EventListener) {
	if l == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if slices.Contains(n.listeners[typ], l) {
		return
	}
	n.listeners[typ] = append(n.listeners[typ], l)
}

// RemoveEventListener unregisters l for typ. Unknown listeners are ignored.
func (n *Node) RemoveEventListener(typ string, l soundbind.EventListener) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ls := n.listeners[typ]
	i := slices.Index(ls, l)
	if i < 0 {
		return
	}

	ls = slices.Delete(slices.Clone(ls), i, i+1)
	if len(ls) == 0 {
		delete(n.listeners, typ)
		return
	}
	n.listeners[typ] = ls
}

// Dispatch fires typ and returns how many listeners received it. Listeners
// run on the caller's goroutine with no lock held, so they may add or
// remove listeners themselves.
func (n *Node) Dispatch(typ string) int {
	n.mu.Lock()
	ls := slices.Clone(n.listeners[typ])
	n.mu.Unlock()

	ev := soundbind.Event{Type: typ, Target: n}
	for _, l := range ls {
		l.HandleEvent(ev)
	}
	return len(ls)
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.listeners[typ])
}

// EventTypes returns the sorted event types that have listeners.
func (n *Node) EventTypes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	types := make([]string, 0, len(n.listeners))
	for typ := range n.listeners {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}
