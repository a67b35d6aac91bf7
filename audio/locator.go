// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path"
	"strings"
)

var mimeFormats = map[string]string{
	"audio/wav":      "wav",
	"audio/wave":     "wav",
	"audio/x-wav":    "wav",
	"audio/vnd.wave": "wav",
	"audio/mpeg":     "mp3",
	"audio/mp3":      "mp3",
	"audio/ogg":      "ogg",
	"audio/vorbis":   "ogg",
	"audio/aiff":     "aiff",
	"audio/x-aiff":   "aiff",
}

// FormatOf guesses the format key of a locator: the lower-cased extension
// of a path or URL (query and fragment ignored), or the media type of a
// data URI. It returns "" when nothing can be inferred.
func FormatOf(locator string) string {
	if rest, ok := strings.CutPrefix(locator, "data:"); ok {
		mediaType, _, _ := strings.Cut(rest, ",")
		mediaType, _, _ = strings.Cut(mediaType, ";")
		return mimeFormats[strings.ToLower(mediaType)]
	}

	if i := strings.IndexAny(locator, "?#"); i >= 0 {
		locator = locator[:i]
	}

	ext := path.Ext(locator)
	if len(ext) < 2 {
		return ""
	}
	return strings.ToLower(ext[1:])
}
