// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/soundbind"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "soundbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
engine:
  sample_rate: 22050
  cache_ttl: 30s
  base_dir: sounds
elements:
  - id: play
    label: Play button
    sound:
      src: [hover.ogg, hover.mp3]
      events:
        play: mouseenter
        stop: mouseleave
      loop: true
      volume: 0.4
      options:
        rate: 1.5
        format: [ogg, mp3]
  - id: close
    sound:
      src: click.wav
      events:
        play: click
      volume: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 22050, cfg.Engine.SampleRate)
	require.Equal(t, 30*time.Second, cfg.Engine.CacheTTL)
	require.Equal(t, filepath.Join(filepath.Dir(path), "sounds"), cfg.Engine.BaseDir)
	require.Len(t, cfg.Elements, 2)

	play := cfg.Elements[0]
	require.Equal(t, "Play button", play.Name())
	sc := play.SoundConfig()
	require.Equal(t, []string{"hover.ogg", "hover.mp3"}, sc.Source)
	require.Equal(t, "mouseenter", sc.PlayEvent)
	require.Equal(t, "mouseleave", sc.StopEvent)
	require.True(t, sc.Loop)
	require.Equal(t, 0.4, sc.Volume)
	require.Equal(t, 1.5, sc.Extra["rate"])
	require.Equal(t, []any{"ogg", "mp3"}, sc.Extra["format"])

	closeEl := cfg.Elements[1]
	require.Equal(t, "close", closeEl.Name())
	sc = closeEl.SoundConfig()
	require.Equal(t, []string{"click.wav"}, sc.Source)
	require.Empty(t, sc.StopEvent)
	require.Zero(t, sc.Volume, "explicit zero volume is kept")
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
elements:
  - id: ok
    sound:
      src: [ok.wav]
      events: {play: click}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	d := Defaults()
	require.Equal(t, d.Engine.SampleRate, cfg.Engine.SampleRate)
	require.Equal(t, d.Engine.CacheTTL, cfg.Engine.CacheTTL)
	require.Equal(t, filepath.Dir(path), cfg.Engine.BaseDir)
	require.Equal(t, soundbind.DefaultVolume, cfg.Elements[0].SoundConfig().Volume)
}

func TestLoad_SingleSourceKeepsCommas(t *testing.T) {
	path := writeConfig(t, `
elements:
  - id: beep
    sound:
      src: "data:audio/wav;base64,UklGRg=="
      events: {play: click}
  - id: remote
    sound:
      src: https://example.com/play?a=1,2
      events: {play: click}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"data:audio/wav;base64,UklGRg=="}, cfg.Elements[0].Sound.Src)
	require.Equal(t, []string{"https://example.com/play?a=1,2"}, cfg.Elements[1].Sound.Src)
}

func TestLoad_OptionKeysLowercased(t *testing.T) {
	path := writeConfig(t, `
elements:
  - id: a
    sound:
      src: [a.wav]
      events: {play: click}
      options:
        AutoPlay: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"autoplay": true}, cfg.Elements[0].Sound.Options)
}

func TestLoad_AbsoluteBaseDir(t *testing.T) {
	abs := t.TempDir()
	path := writeConfig(t, "engine:\n  base_dir: "+abs+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, abs, cfg.Engine.BaseDir)
	require.Empty(t, cfg.Elements)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "missing id",
			body: "elements:\n  - sound: {src: [a.wav], events: {play: click}}\n",
			want: ErrMissingID,
		},
		{
			name: "duplicate id",
			body: `
elements:
  - id: a
    sound: {src: [a.wav], events: {play: click}}
  - id: a
    sound: {src: [b.wav], events: {play: click}}
`,
			want: ErrDuplicateID,
		},
		{
			name: "no play event",
			body: "elements:\n  - id: a\n    sound: {src: [a.wav]}\n",
			want: soundbind.ErrMissingPlayEvent,
		},
		{
			name: "volume out of range",
			body: "elements:\n  - id: a\n    sound: {src: [a.wav], events: {play: click}, volume: 3}\n",
			want: soundbind.ErrVolumeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "elements: [\n"))
	require.Error(t, err)
}

func TestConfig_YAMLLoadsBack(t *testing.T) {
	path := writeConfig(t, `
engine:
  cache_ttl: 90s
elements:
  - id: play
    sound:
      src: [hover.ogg, hover.mp3]
      events: {play: mouseenter, stop: mouseleave}
      volume: 0
      options:
        format: [ogg, mp3]
`)
	want, err := Load(path)
	require.NoError(t, err)

	out, err := yaml.Marshal(want)
	require.NoError(t, err)
	require.Contains(t, string(out), "cache_ttl: 1m30s")

	got, err := Load(writeConfig(t, string(out)))
	require.NoError(t, err)
	require.Equal(t, want, got)
}
