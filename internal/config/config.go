// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Drive   DriveConfig   `yaml:"drive"`
	Limits  LimitsConfig  `yaml:"limits"`
	Control ControlConfig `yaml:"control"`
}

// ---- DRIVE CONNECTION ----

type DriveConfig struct {
	DisplayName string `yaml:"display_name"`

	Host           string  `yaml:"host"`
	Port           int     `yaml:"port"`
	UnitID         uint8   `yaml:"unit_id"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	PollIntervalSeconds  float64 `yaml:"poll_interval_seconds"`
	MaxConnectionRetries int     `yaml:"max_connection_retries"`
}

// ---- OPERATIONAL LIMITS ----

type LimitsConfig struct {
	MinFrequencyHz float64 `yaml:"min_frequency_hz"`
	MaxFrequencyHz float64 `yaml:"max_frequency_hz"`

	AccelSeconds float64 `yaml:"accel_seconds"`
	DecelSeconds float64 `yaml:"decel_seconds"`

	// Current threshold for the overcurrent warning (% of nominal).
	OvercurrentThresholdPct float64 `yaml:"overcurrent_threshold_pct"`
	// Temperature threshold for the overtemperature warning (C).
	OvertempThresholdC float64 `yaml:"overtemp_threshold_c"`
}

// ---- SAFETY PERMISSIONS ----

type ControlConfig struct {
	EnableRemoteControl bool `yaml:"enable_remote_control"`
	EnableSpeedControl  bool `yaml:"enable_speed_control"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
