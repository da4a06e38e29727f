// internal/config/normalize.go
package config

// Defaults applied by Normalize for fields left at their zero value.
const (
	DefaultDisplayName = "Schneider VSD"
	DefaultHost        = "192.168.1.100"
	DefaultPort        = 502
	DefaultUnitID      = 1

	DefaultTimeoutSeconds       = 5.0
	DefaultPollIntervalSeconds  = 1.0
	DefaultMaxConnectionRetries = 3

	DefaultMaxFrequencyHz = 50.0
	DefaultAccelSeconds   = 10.0
	DefaultDecelSeconds   = 10.0

	DefaultOvercurrentThresholdPct = 110.0
	DefaultOvertempThresholdC      = 80.0
)

// Normalize applies defaults for unset fields.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Drive
	if d.DisplayName == "" {
		d.DisplayName = DefaultDisplayName
	}
	if d.Host == "" {
		d.Host = DefaultHost
	}
	if d.Port == 0 {
		d.Port = DefaultPort
	}
	if d.UnitID == 0 {
		d.UnitID = DefaultUnitID
	}
	if d.TimeoutSeconds == 0 {
		d.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if d.PollIntervalSeconds == 0 {
		d.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if d.MaxConnectionRetries == 0 {
		d.MaxConnectionRetries = DefaultMaxConnectionRetries
	}

	l := &cfg.Limits
	if l.MaxFrequencyHz == 0 {
		l.MaxFrequencyHz = DefaultMaxFrequencyHz
	}
	if l.AccelSeconds == 0 {
		l.AccelSeconds = DefaultAccelSeconds
	}
	if l.DecelSeconds == 0 {
		l.DecelSeconds = DefaultDecelSeconds
	}
	if l.OvercurrentThresholdPct == 0 {
		l.OvercurrentThresholdPct = DefaultOvercurrentThresholdPct
	}
	if l.OvertempThresholdC == 0 {
		l.OvertempThresholdC = DefaultOvertempThresholdC
	}

	// MinFrequencyHz defaults to 0, which is already the zero value.
	// Remote and speed control default to disabled.
}
