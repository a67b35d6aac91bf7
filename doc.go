// SPDX-License-Identifier: EPL-2.0

// Package soundbind binds sound playback to UI element events.
//
// A Binding owns one audio handle per element and wires it to two events:
// one that starts playback and an optional one that stops it. When the
// element's configuration changes the binding is torn down and rebuilt, and
// when the element goes away it is destroyed. No listener or handle from an
// older configuration survives either step.
//
// # Quick Start
//
//	eng := engine.New()
//	button := dom.New("play")
//
//	b, err := soundbind.Bind(button, eng, soundbind.NewSoundConfig(
//	    soundbind.WithSource("hover.ogg", "hover.mp3"),
//	    soundbind.WithEvents("mouseenter", "mouseleave"),
//	    soundbind.WithVolume(0.6),
//	))
//	if err != nil {
//	    // *ConfigError
//	}
//	defer b.Destroy()
//
//	button.Dispatch("mouseenter") // starts the sound once it is loaded
//
// # Collaborators
//
// The package does not decode or mix audio and does not know any UI
// toolkit. It talks to:
//   - an Engine, which builds a Handle (Play, Stop, Dispose) from a
//     LoadRequest; see the engine subpackage for one built on decoders
//     from formats/ and a streaming mixer
//   - an EventTarget, anything that can add and remove EventListeners;
//     see the dom subpackage
//
// # Lifecycle
//
// Handles load asynchronously. Play and Stop before the handle is ready are
// remembered, the last one wins, and applied when it arrives. Update and
// Destroy cancel any load in flight; if it completes anyway its result is
// thrown away and the handle it produced is disposed, so at most one handle
// is ever live per binding.
//
// Load failures are reported as *LoadError through OnLoadError and Wait.
// They are not retried; the binding stays silent until the next Update.
//
// # Many Elements
//
// Manager keeps the element to binding table that UI framework hooks need,
// and UseSound turns a sound definition into a reusable Factory:
//
//	m := soundbind.NewManager(eng)
//	click := m.UseSound([]string{"click.wav"}, "click", "")
//	for _, n := range buttons {
//	    click(n, soundbind.WithVolume(0.4))
//	}
//	m.Play(buttons[0])
package soundbind
