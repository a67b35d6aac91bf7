// SPDX-License-Identifier: EPL-2.0

package soundbind

// Event is delivered to listeners when an element fires a named event.
type Event struct {
	Type   string
	Target EventTarget
}

// EventListener receives events. Listeners are compared by identity when
// removed, so implementations should be pointer types.
type EventListener interface {
	HandleEvent(Event)
}

// EventTarget is the UI element side of a binding.
type EventTarget interface {
	AddEventListener(typ string, l EventListener)
	RemoveEventListener(typ string, l EventListener)
}
