// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and AIFF-C files through
// github.com/go-audio/aiff.
//
// # Decoding
//
//	src, err := aiff.Decoder{}.Decode(f)
//	switch {
//	case errors.Is(err, aiff.ErrNotAiffFile):
//	    // try another decoder
//	case err != nil:
//	    return err
//	}
//	defer src.Close()
//
// Input that is not an io.ReadSeeker, such as an HTTP body, is read fully
// into memory first because the container has to be parsed before the
// sound data.
//
// # Output Format
//
//   - Sample format: interleaved float32 in [-1.0, 1.0]
//   - Bit depths: 8, 16, 24 and 32 bit signed integer PCM
//   - Channels and sample rate: as stored in the COMM chunk
//
// Integer samples are scaled by 1/2^(bits-1), so full scale negative maps
// to exactly -1.
//
// # Limitations
//
//   - Compressed AIFF-C variants are not decoded
//   - Decoding only; there is no AIFF writer
package aiff
