// SPDX-License-Identifier: EPL-2.0

package soundbind

import "slices"

// Factory binds a preconfigured sound to target. overrides are applied
// last and win over the template's options.
type Factory func(target EventTarget, overrides ...Option) (*Binding, error)

type template struct {
	source    []string
	playEvent string
	stopEvent string
	base      []Option
}

func newTemplate(src []string, playEvent, stopEvent string, base []Option) template {
	return template{
		source:    slices.Clone(src),
		playEvent: playEvent,
		stopEvent: stopEvent,
		base:      slices.Clone(base),
	}
}

func (t template) config(overrides []Option) SoundConfig {
	opts := make([]Option, 0, 2+len(t.base)+len(overrides))
	opts = append(opts, WithSource(t.source...), WithEvents(t.playEvent, t.stopEvent))
	opts = append(opts, t.base...)
	opts = append(opts, overrides...)

	return NewSoundConfig(opts...)
}

// UseSound returns a Factory for a reusable sound: the same source and
// events bound to any number of elements.
//
//	click := soundbind.UseSound(eng, []string{"click.ogg", "click.mp3"}, "click", "", soundbind.WithVolume(0.5))
//	b, err := click(button, soundbind.WithVolume(0.8))
func UseSound(engine Engine, src []string, playEvent, stopEvent string, base ...Option) Factory {
	t := newTemplate(src, playEvent, stopEvent, base)
	return func(target EventTarget, overrides ...Option) (*Binding, error) {
		return Bind(target, engine, t.config(overrides))
	}
}

// UseSound is like the package level UseSound but registers every binding
// with m.
func (m *Manager) UseSound(src []string, playEvent, stopEvent string, base ...Option) Factory {
	t := newTemplate(src, playEvent, stopEvent, base)
	return func(target EventTarget, overrides ...Option) (*Binding, error) {
		return m.Attach(target, t.config(overrides))
	}
}
