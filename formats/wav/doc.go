// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// # Decoding
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits, any channel count and any rate:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	fmt.Println(src.SampleRate(), src.Channels())
//
// 8-bit files store unsigned samples; they are recentred so silence decodes
// to 0 like every other depth. Input that is not an io.ReadSeeker is read
// into memory first.
//
// # Errors
//
//   - ErrNotWavFile: the data has no RIFF/WAVE header
//   - ErrOnlyPCMSupported: compressed or floating point WAV
//
// # Writing
//
// WriteWAV16 writes mono 16-bit PCM with a canonical 44-byte header to any
// io.Writer. It needs no seeking, so it can write straight to a network
// connection or a bytes.Buffer:
//
//	var buf bytes.Buffer
//	if err := wav.WriteWAV16(&buf, 8000, pcm); err != nil {
//	    return err
//	}
//
// For stereo or other bit depths use github.com/go-audio/wav's Encoder
// directly; the engine's Recorder does.
package wav
