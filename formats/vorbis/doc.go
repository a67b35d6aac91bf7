// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    consume(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// The registry in the formats package registers this decoder as "ogg" with
// the aliases "oga" and "vorbis", so "theme.oga" and a format hint of
// "vorbis" both resolve here.
//
// # Output Format
//
//   - Sample format: interleaved float32 in [-1.0, 1.0], as oggvorbis
//     produces it, no conversion
//   - Channels and sample rate: those of the first logical stream
//
// dst is truncated to a whole number of frames before reading.
//
// # Limitations
//
// Decoding only; there is no Vorbis encoder. Opus in Ogg is a different
// codec and is not read by this package.
package vorbis
