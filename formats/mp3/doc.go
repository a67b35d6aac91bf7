// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 through github.com/hajimehoshi/go-mp3.
//
// # Decoding
//
//	f, err := os.Open("click.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: interleaved float32 in [-1.0, 1.0]
//   - Channels: always 2; mono files come out with the same signal on both
//   - Sample rate: the file's own, typically 44.1kHz or 48kHz
//
// ReadSamples only hands out whole stereo frames, so dst should hold an
// even number of samples. A truncated last frame is dropped and reported
// as io.EOF.
//
// To fold to mono or change the rate, wrap the source from the audio
// package:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
// # Limitations
//
//   - Decoding only; there is no MP3 writer
//   - go-mp3 decodes MPEG-1/2 Layer III only
package mp3
