// Package config handles demo configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Transform TransformConfig `yaml:"transform"`
	Demo      DemoConfig      `yaml:"demo"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TransformConfig holds transform cache settings.
type TransformConfig struct {
	// DecomposeEpsilon is the smallest axis length or determinant accepted
	// when splitting a matrix into position, rotation and scale.
	DecomposeEpsilon float64 `yaml:"decompose_epsilon"`
}

// DemoConfig holds settings for the frame-loop demo.
type DemoConfig struct {
	Frames    int           `yaml:"frames"`
	FrameTime time.Duration `yaml:"frame_time"`
	Scene     string        `yaml:"scene"` // YAML scene description or glTF file
	Dump      bool          `yaml:"dump"`  // print the hierarchy after the last frame

	// DebugBounds collects wireframe boxes around visible meshes each frame.
	DebugBounds bool `yaml:"debug_bounds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Transform: TransformConfig{
			DecomposeEpsilon: 1e-6,
		},
		Demo: DemoConfig{
			Frames:    120,
			FrameTime: time.Second / 60,
			Scene:     "",
			Dump:      false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	if c.Transform.DecomposeEpsilon <= 0 {
		return fmt.Errorf("transform.decompose_epsilon must be positive, got %g", c.Transform.DecomposeEpsilon)
	}
	if c.Demo.Frames < 0 {
		return fmt.Errorf("demo.frames must not be negative, got %d", c.Demo.Frames)
	}
	if c.Demo.FrameTime <= 0 {
		return fmt.Errorf("demo.frame_time must be positive, got %s", c.Demo.FrameTime)
	}
	return nil
}
