// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/ik5/soundbind/audio"
	"github.com/rs/zerolog"
)

const (
	DefaultSampleRate = 44100
	DefaultCacheTTL   = 10 * time.Minute
)

// Option configures an Engine.
type Option func(*Engine)

// WithSampleRate sets the output rate every sound is resampled to.
func WithSampleRate(rate int) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.rate = rate
		}
	}
}

// WithRegistry replaces the decoder registry. The default is
// formats.Default().
func WithRegistry(r *audio.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithOpener replaces how locators are turned into byte streams.
func WithOpener(o Opener) Option {
	return func(e *Engine) {
		e.opener = o
	}
}

// WithCacheTTL sets how long decoded sounds stay cached after their last
// load. A ttl <= 0 keeps them until the engine is closed.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.ttl = ttl
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBaseDir resolves relative file locators against dir. It has no
// effect when WithOpener is also given.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = dir
	}
}

// Passthrough keys understood in soundbind.LoadRequest.Extra.
const (
	OptFormat   = "format"
	OptRate     = "rate"
	OptMute     = "mute"
	OptAutoplay = "autoplay"
)

type loadOptions struct {
	formats  []string
	speed    float64
	mute     bool
	autoplay bool
}

// parseOptions reads the recognised keys of extra and returns the rest as
// unknown.
func parseOptions(extra map[string]any) (loadOptions, []string, error) {
	opts := loadOptions{speed: 1}
	var unknown []string

	for _, key := range slices.Sorted(maps.Keys(extra)) {
		v := extra[key]
		var err error

		switch key {
		case OptFormat:
			opts.formats, err = stringList(v)
		case OptRate:
			opts.speed, err = positive(v)
		case OptMute:
			opts.mute, err = boolean(v)
		case OptAutoplay:
			opts.autoplay, err = boolean(v)
		default:
			unknown = append(unknown, key)
		}

		if err != nil {
			return loadOptions{}, nil, fmt.Errorf("%w: %s: %w", ErrInvalidOption, key, err)
		}
	}

	return opts, unknown, nil
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("want strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("want string or list, got %T", v)
}

func positive(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%v is not positive", f)
	}
	return f, nil
}

func boolean(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("want bool, got %T", v)
	}
	return b, nil
}
