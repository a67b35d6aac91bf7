// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"

	"github.com/ik5/soundbind/audio"
)

var (
	// ErrUnknownFormat is audio.ErrUnknownFormat, re-exported for callers
	// that only import this package.
	ErrUnknownFormat = audio.ErrUnknownFormat

	ErrUnsupportedLocator = errors.New("unsupported locator")
	ErrHTTPStatus         = errors.New("unexpected HTTP status")
	ErrInvalidOption      = errors.New("invalid sound option")
	ErrEmptySound         = errors.New("sound has no samples")
)
