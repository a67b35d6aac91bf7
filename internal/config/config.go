// SPDX-License-Identifier: EPL-2.0

// Package config loads the bindings file: engine settings plus the list of
// elements and the sound bound to each.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/ik5/soundbind"
	"github.com/spf13/viper"
)

var (
	ErrMissingID   = errors.New("element without id")
	ErrDuplicateID = errors.New("duplicate element id")
)

type Config struct {
	Engine   EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Elements []ElementConfig `mapstructure:"elements" yaml:"elements"`
}

type EngineConfig struct {
	SampleRate int           `mapstructure:"sample_rate"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	// BaseDir resolves relative sound paths. Empty means the directory of
	// the config file; a relative value is taken from there too.
	BaseDir string `mapstructure:"base_dir"`
}

// ElementConfig is one UI element and its sound.
type ElementConfig struct {
	ID    string    `mapstructure:"id" yaml:"id"`
	Label string    `mapstructure:"label" yaml:"label,omitempty"`
	Sound SoundSpec `mapstructure:"sound" yaml:"sound,omitempty"`
}

type SoundSpec struct {
	// Src accepts a single string or a list.
	Src    []string   `mapstructure:"src" yaml:"src"`
	Events EventsSpec `mapstructure:"events" yaml:"events"`
	Loop   bool       `mapstructure:"loop" yaml:"loop,omitempty"`
	// Volume is a pointer so an explicit 0 is kept apart from "unset".
	Volume *float64 `mapstructure:"volume" yaml:"volume,omitempty"`
	// Options are passed to the engine as is, except that keys arrive
	// lowercased: viper folds the case of every key in the file.
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

type EventsSpec struct {
	Play string `mapstructure:"play" yaml:"play"`
	Stop string `mapstructure:"stop" yaml:"stop,omitempty"`
}

// MarshalYAML writes CacheTTL as a duration string so the output loads
// back unchanged.
func (e EngineConfig) MarshalYAML() (any, error) {
	return struct {
		SampleRate int    `yaml:"sample_rate"`
		CacheTTL   string `yaml:"cache_ttl"`
		BaseDir    string `yaml:"base_dir,omitempty"`
	}{e.SampleRate, e.CacheTTL.String(), e.BaseDir}, nil
}

// Defaults returns the configuration used for keys the file leaves out.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			SampleRate: 44100,
			CacheTTL:   10 * time.Minute,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("engine.sample_rate", d.Engine.SampleRate)
	v.SetDefault("engine.cache_ttl", d.Engine.CacheTTL)
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return decode(v, filepath.Dir(path))
}

var stringSlice = reflect.TypeFor[[]string]()

// singleStringToSlice turns a lone string into a one element list. viper's
// default hook splits on commas, which breaks data URIs and URLs.
func singleStringToSlice(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != stringSlice {
		return data, nil
	}
	return []string{data.(string)}, nil
}

func decode(v *viper.Viper, dir string) (Config, error) {
	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		singleStringToSlice,
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	switch {
	case cfg.Engine.BaseDir == "":
		cfg.Engine.BaseDir = dir
	case !filepath.IsAbs(cfg.Engine.BaseDir):
		cfg.Engine.BaseDir = filepath.Join(dir, cfg.Engine.BaseDir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks element ids and every element's sound.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Elements))
	for i, el := range c.Elements {
		if el.ID == "" {
			return fmt.Errorf("elements[%d]: %w", i, ErrMissingID)
		}
		if seen[el.ID] {
			return fmt.Errorf("elements[%d]: %w: %q", i, ErrDuplicateID, el.ID)
		}
		seen[el.ID] = true

		if err := el.SoundConfig().Validate(); err != nil {
			return fmt.Errorf("element %q: %w", el.ID, err)
		}
	}
	return nil
}

// SoundConfig converts the element's sound to a soundbind.SoundConfig.
func (e ElementConfig) SoundConfig() soundbind.SoundConfig {
	opts := []soundbind.Option{
		soundbind.WithSource(e.Sound.Src...),
		soundbind.WithEvents(e.Sound.Events.Play, e.Sound.Events.Stop),
		soundbind.WithLoop(e.Sound.Loop),
		soundbind.WithExtras(e.Sound.Options),
	}
	if e.Sound.Volume != nil {
		opts = append(opts, soundbind.WithVolume(*e.Sound.Volume))
	}
	return soundbind.NewSoundConfig(opts...)
}

// Name is the label, or the id when there is none.
func (e ElementConfig) Name() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}
