// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/soundbind/audio"
	"github.com/ik5/soundbind/formats/aiff"
	"github.com/ik5/soundbind/formats/mp3"
	"github.com/ik5/soundbind/formats/vorbis"
	"github.com/ik5/soundbind/formats/wav"
)

// Default returns a registry with wav, mp3, ogg and aiff decoders under
// their usual extensions.
func Default() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, "wave")
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{}, "oga", "vorbis")
	r.Register("aiff", aiff.Decoder{}, "aif", "aifc")
	return r
}
