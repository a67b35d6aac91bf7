// SPDX-License-Identifier: EPL-2.0

package soundbind

import (
	"maps"
	"math"
	"reflect"
	"slices"
)

// DefaultVolume is the volume applied by NewSoundConfig.
const DefaultVolume = 1.0

// SoundConfig describes one sound and the two UI events that drive it.
//
// A SoundConfig is treated as immutable once handed to Bind, Update or
// NewPlayer: the slices and maps are copied on the way in.
type SoundConfig struct {
	// Source lists one or more locators. The engine tries them in order.
	Source []string
	// PlayEvent is the UI event that starts playback. Required.
	PlayEvent string
	// StopEvent is the UI event that stops playback. Empty means the sound
	// is only stopped through Stop or Destroy.
	StopEvent string
	Loop      bool
	// Volume in [0,1].
	Volume float64
	// Extra holds engine specific options forwarded verbatim.
	Extra map[string]any
}

// Option mutates a SoundConfig under construction.
type Option func(*SoundConfig)

// NewSoundConfig builds a SoundConfig with Volume set to DefaultVolume and
// then applies opts in order.
func NewSoundConfig(opts ...Option) SoundConfig {
	cfg := SoundConfig{Volume: DefaultVolume}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSource replaces the source locators.
func WithSource(src ...string) Option {
	return func(c *SoundConfig) {
		c.Source = slices.Clone(src)
	}
}

// WithEvents sets the play and stop trigger events. stop may be empty.
func WithEvents(play, stop string) Option {
	return func(c *SoundConfig) {
		c.PlayEvent = play
		c.StopEvent = stop
	}
}

func WithLoop(loop bool) Option {
	return func(c *SoundConfig) {
		c.Loop = loop
	}
}

func WithVolume(volume float64) Option {
	return func(c *SoundConfig) {
		c.Volume = volume
	}
}

// WithExtra sets a single passthrough option.
func WithExtra(key string, value any) Option {
	return func(c *SoundConfig) {
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = value
	}
}

// WithExtras merges extra into the passthrough options, overwriting
// existing keys.
func WithExtras(extra map[string]any) Option {
	return func(c *SoundConfig) {
		if len(extra) == 0 {
			return
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any, len(extra))
		}
		maps.Copy(c.Extra, extra)
	}
}

// Validate reports the first problem found as a *ConfigError.
func (c SoundConfig) Validate() error {
	if c.PlayEvent == "" {
		return &ConfigError{Field: "PlayEvent", Err: ErrMissingPlayEvent}
	}
	if len(c.Source) == 0 {
		return &ConfigError{Field: "Source", Err: ErrMissingSource}
	}
	for _, s := range c.Source {
		if s == "" {
			return &ConfigError{Field: "Source", Err: ErrEmptySource}
		}
	}
	if math.IsNaN(c.Volume) || c.Volume < 0 || c.Volume > 1 {
		return &ConfigError{Field: "Volume", Err: ErrVolumeRange}
	}
	return nil
}

// Equal reports whether c and o describe the same sound. Extra values are
// compared deeply, so option lists decoded from a config file compare
// equal across reloads.
func (c SoundConfig) Equal(o SoundConfig) bool {
	if c.PlayEvent != o.PlayEvent || c.StopEvent != o.StopEvent ||
		c.Loop != o.Loop || c.Volume != o.Volume {
		return false
	}
	if !slices.Equal(c.Source, o.Source) || len(c.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range c.Extra {
		w, ok := o.Extra[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

func (c SoundConfig) clone() SoundConfig {
	c.Source = slices.Clone(c.Source)
	c.Extra = maps.Clone(c.Extra)
	return c
}

func (c SoundConfig) request() LoadRequest {
	return LoadRequest{
		Sources: slices.Clone(c.Source),
		Loop:    c.Loop,
		Volume:  c.Volume,
		Extra:   maps.Clone(c.Extra),
	}
}
