// SPDX-License-Identifier: EPL-2.0

// Package engine is an in-process implementation of soundbind.Engine.
//
// Loading opens a locator (a path, file://, http(s):// or data: URI), picks
// a decoder from an audio.Registry by the "format" option or the locator's
// extension, resamples the result to the engine rate and keeps it in a
// beep.Buffer. Decoded buffers are cached per locator, so binding the same
// sound to many elements decodes it once.
//
// Handles mix into the engine, which is itself a beep.Streamer. Drive it
// from a speaker, or use Render and Pump with a Sink such as Recorder:
//
//	eng := engine.New(engine.WithSampleRate(48000))
//	rec, _ := engine.CreateRecorder("out.wav", eng.SampleRate())
//	defer rec.Close()
//	go eng.Pump(ctx, rec, 20*time.Millisecond)
//
// Extra options understood by Load:
//
//	format    string or list; decoder keys tried before the extension
//	rate      playback speed, > 0 (1 is normal)
//	mute      play silently
//	autoplay  start as soon as the sound is loaded
package engine
