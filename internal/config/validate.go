// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	d := cfg.Drive

	if d.Host == "" {
		return fmt.Errorf("drive: host is required")
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("drive: port %d out of range 1-65535", d.Port)
	}
	if d.TimeoutSeconds <= 0 {
		return fmt.Errorf("drive: timeout_seconds must be > 0")
	}
	if d.PollIntervalSeconds <= 0 {
		return fmt.Errorf("drive: poll_interval_seconds must be > 0")
	}
	if d.MaxConnectionRetries < 1 {
		return fmt.Errorf("drive: max_connection_retries must be >= 1")
	}

	l := cfg.Limits

	if l.MinFrequencyHz < 0 {
		return fmt.Errorf("limits: min_frequency_hz must be >= 0")
	}
	if l.MaxFrequencyHz <= l.MinFrequencyHz {
		return fmt.Errorf(
			"limits: max_frequency_hz (%g) must be greater than min_frequency_hz (%g)",
			l.MaxFrequencyHz, l.MinFrequencyHz,
		)
	}
	if l.AccelSeconds <= 0 {
		return fmt.Errorf("limits: accel_seconds must be > 0")
	}
	if l.DecelSeconds <= 0 {
		return fmt.Errorf("limits: decel_seconds must be > 0")
	}
	if l.OvercurrentThresholdPct <= 0 {
		return fmt.Errorf("limits: overcurrent_threshold_pct must be > 0")
	}
	if l.OvertempThresholdC <= 0 {
		return fmt.Errorf("limits: overtemp_threshold_c must be > 0")
	}

	return nil
}
