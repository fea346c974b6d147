// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the sfrender tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ik5/sfsynth/internal/logger"
	"github.com/ik5/sfsynth/synth"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the top level configuration.
type Config struct {
	SoundFont string         `yaml:"soundfont"`
	Output    OutputConfig   `yaml:"output"`
	Render    RenderConfig   `yaml:"render"`
	Playback  PlaybackConfig `yaml:"playback"`
	NATS      NATSConfig     `yaml:"nats"`
	Log       logger.Config  `yaml:"log"`
}

// OutputConfig describes the rendered audio.
type OutputConfig struct {
	// Mode is "stereo", "unweaved" or "mono".
	Mode       string  `yaml:"mode"`
	SampleRate int     `yaml:"sample_rate"`
	GainDB     float64 `yaml:"gain_db"`
	// ResampleRate converts the rendered output before encoding. Zero keeps
	// SampleRate.
	ResampleRate int `yaml:"resample_rate"`
	// Format is a registered encoder key such as "wav" or "aiff".
	Format   string `yaml:"format"`
	BitDepth int    `yaml:"bit_depth"`
}

// RenderConfig tunes the synthesizer.
type RenderConfig struct {
	Tail      time.Duration `yaml:"tail"`
	Polyphony int           `yaml:"polyphony"`
	Effects   bool          `yaml:"effects"`
}

// PlaybackConfig tunes live playback.
type PlaybackConfig struct {
	BlockFrames int           `yaml:"block_frames"`
	Buffer      time.Duration `yaml:"buffer"`
	QueueSize   int           `yaml:"queue_size"`
}

// NATSConfig enables remote control when URL is set.
type NATSConfig struct {
	URL      string `yaml:"url"`
	Subject  string `yaml:"subject"`
	Attempts int    `yaml:"attempts"`
}

// Load reads the YAML file at path. ${VAR} references are expanded from the
// environment before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML data, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.Expand(string(data), os.Getenv)

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Output.Mode == "" {
		cfg.Output.Mode = "stereo"
	}
	if cfg.Output.SampleRate == 0 {
		cfg.Output.SampleRate = 44100
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "wav"
	}
	if cfg.Output.BitDepth == 0 {
		cfg.Output.BitDepth = 16
	}
	if cfg.Render.Tail == 0 {
		cfg.Render.Tail = 2 * time.Second
	}
	if cfg.Playback.BlockFrames == 0 {
		cfg.Playback.BlockFrames = 512
	}
	if cfg.Playback.QueueSize == 0 {
		cfg.Playback.QueueSize = 256
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = "synth.events"
	}
	if cfg.NATS.Attempts == 0 {
		cfg.NATS.Attempts = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// OutputMode maps Output.Mode to a synth.OutputMode.
func (c *Config) OutputMode() (synth.OutputMode, error) {
	switch strings.ToLower(c.Output.Mode) {
	case "stereo", "interleaved":
		return synth.StereoInterleaved, nil
	case "unweaved":
		return synth.StereoUnweaved, nil
	case "mono":
		return synth.Mono, nil
	}

	return 0, fmt.Errorf("%w: output mode %q", ErrInvalid, c.Output.Mode)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.OutputMode(); err != nil {
		return err
	}

	if c.Output.SampleRate < 1 || c.Output.SampleRate > synth.MaxSampleRate {
		return fmt.Errorf("%w: sample_rate %d outside 1..%d", ErrInvalid,
			c.Output.SampleRate, synth.MaxSampleRate)
	}

	if c.Output.ResampleRate < 0 {
		return fmt.Errorf("%w: resample_rate %d", ErrInvalid, c.Output.ResampleRate)
	}

	if c.Output.BitDepth != 16 && c.Output.BitDepth != 24 {
		return fmt.Errorf("%w: bit_depth %d, want 16 or 24", ErrInvalid, c.Output.BitDepth)
	}

	if c.Render.Tail < 0 {
		return fmt.Errorf("%w: tail %v", ErrInvalid, c.Render.Tail)
	}

	if c.Render.Polyphony < 0 {
		return fmt.Errorf("%w: polyphony %d", ErrInvalid, c.Render.Polyphony)
	}

	if c.Playback.BlockFrames < 0 || c.Playback.QueueSize < 0 {
		return fmt.Errorf("%w: playback block_frames %d queue_size %d", ErrInvalid,
			c.Playback.BlockFrames, c.Playback.QueueSize)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}
