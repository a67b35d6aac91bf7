// SPDX-License-Identifier: EPL-2.0

package soundbind

import "context"

// LoadRequest is what a Player asks the engine to build a handle from.
// Loop and Volume are already defaulted; Extra is passed through untouched.
type LoadRequest struct {
	Sources []string
	Loop    bool
	Volume  float64
	Extra   map[string]any
}

// Handle is one loaded, playable sound owned by exactly one Player.
type Handle interface {
	// Play starts playback from the beginning.
	Play()
	// Stop halts playback. Stopping a silent handle does nothing.
	Stop()
	// Dispose releases the handle. It is called exactly once.
	Dispose() error
}

// Engine builds handles. Load may block for as long as decoding or
// fetching takes and should give up when ctx is cancelled; Players call it
// from their own goroutine.
type Engine interface {
	Load(ctx context.Context, req LoadRequest) (Handle, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, req LoadRequest) (Handle, error)

func (f EngineFunc) Load(ctx context.Context, req LoadRequest) (Handle, error) {
	return f(ctx, req)
}
