package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme         = "kente"
	DefaultPage          = "overview"
	DefaultFrameRate     = 60
	DefaultDurationMs    = 1500
	DefaultMinDelayMs    = 1500
	DefaultJitterMs      = 1000
	logFileName          = "youthpulse.log"
	maxFrameRate         = 240
	defaultAnimationName = "default"
)

var (
	ErrFrameRate = errors.New("config: frame rate out of range")
	ErrDelay     = errors.New("config: assistant delay must not be negative")
)

type Config struct {
	Theme     string          `yaml:"theme"`
	Page      string          `yaml:"page"`
	FrameRate int             `yaml:"frame_rate"`
	DataFile  string          `yaml:"data_file"`
	Animation AnimationConfig `yaml:"animation"`
	Assistant AssistantConfig `yaml:"assistant"`
	Log       LogConfig       `yaml:"log"`
}

// AnimationConfig controls the KPI count-up. A zero duration shows final
// values immediately.
type AnimationConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

type AssistantConfig struct {
	MinDelayMs int   `yaml:"min_delay_ms"`
	JitterMs   int   `yaml:"jitter_ms"`
	Seed       int64 `yaml:"seed"`
}

type LogConfig struct {
	File    string `yaml:"file"`
	Verbose bool   `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:     DefaultTheme,
		Page:      DefaultPage,
		FrameRate: DefaultFrameRate,
		Animation: *Presets[defaultAnimationName],
		Assistant: AssistantConfig{
			MinDelayMs: DefaultMinDelayMs,
			JitterMs:   DefaultJitterMs,
		},
		Log: LogConfig{File: DefaultLogPath()},
	}
}

// DefaultLogPath is the log file under the user cache directory, or empty
// (logging off) when there is none.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "youthpulse", logFileName)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FrameRate <= 0 || c.FrameRate > maxFrameRate {
		return fmt.Errorf("%w: %d", ErrFrameRate, c.FrameRate)
	}
	if c.Assistant.MinDelayMs < 0 || c.Assistant.JitterMs < 0 {
		return ErrDelay
	}
	return nil
}

func (c *Config) CounterDuration() time.Duration {
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(c.FrameRate)
}

func (c *Config) AssistantDelay() (base, jitter time.Duration) {
	return time.Duration(c.Assistant.MinDelayMs) * time.Millisecond,
		time.Duration(c.Assistant.JitterMs) * time.Millisecond
}
