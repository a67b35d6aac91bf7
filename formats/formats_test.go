// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	r := Default()
	require.Equal(t,
		[]string{"aif", "aifc", "aiff", "mp3", "oga", "ogg", "vorbis", "wav", "wave"},
		r.Formats())

	for _, loc := range []string{"a.wav", "b.MP3", "c.ogg", "d.aif", "data:audio/ogg;base64,AA"} {
		_, _, err := r.Lookup(loc)
		require.NoError(t, err, loc)
	}
}
