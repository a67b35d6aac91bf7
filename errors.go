// SPDX-License-Identifier: EPL-2.0

package soundbind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingPlayEvent = errors.New("play event is required")
	ErrMissingSource    = errors.New("at least one source is required")
	ErrEmptySource      = errors.New("source locator is empty")
	ErrVolumeRange      = errors.New("volume must be within [0,1]")

	// ErrDestroyed is returned by operations on a destroyed binding or a
	// closed player.
	ErrDestroyed = errors.New("binding destroyed")

	ErrAlreadyBound = errors.New("element already bound")
	ErrNotBound     = errors.New("element not bound")

	ErrNilEngine = errors.New("engine is nil")
	ErrNilTarget = errors.New("event target is nil")

	// errSuperseded marks a generation whose result was discarded because
	// a newer configuration replaced it.
	errSuperseded = errors.New("superseded by a newer configuration")
	errNilHandle  = errors.New("engine returned no handle")
)

// ConfigError reports an invalid SoundConfig.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid sound config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadError reports that the engine could not build a handle for a
// configuration. The binding stays without a handle until the next Update.
type LoadError struct {
	Sources []string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading sound [%s]: %v", strings.Join(e.Sources, ", "), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
