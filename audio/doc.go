// SPDX-License-Identifier: EPL-2.0

// Package audio holds the PCM building blocks the sound engine decodes
// into: the Source stream interface, a Decoder Registry keyed by format,
// a cubic Resampler and a MonoMixer.
//
// Samples are interleaved float32 values in [-1.0, 1.0]. Sources signal the
// end of the stream with io.EOF, possibly together with the last samples:
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
// Registry.Lookup chooses a decoder for a sound locator from an explicit
// format hint or from the locator's extension (or data URI media type):
//
//	dec, format, err := registry.Lookup("sounds/click.ogg?v=2")
//	// format == "ogg"
//
// # Resampling and Mono
//
// Resampler converts any Source to another rate with cubic interpolation
// and a light low-pass filter when downsampling. MonoMixer averages the
// channels of each frame. Both are Sources themselves and chain:
//
//	src, _ := dec.Decode(f)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
// ResampleToMono16 runs that chain to the end and returns 16-bit PCM, ready
// for wav.WriteWAV16:
//
//	pcm, err := audio.ResampleToMono16(src, 16000, 4096)
//
// Closing a Resampler or MonoMixer closes the Source it wraps.
//
// BufferSource turns samples already in memory into a Source, which is how
// recordings collected frame by frame reach the same chain.
package audio
