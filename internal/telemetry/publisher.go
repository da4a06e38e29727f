// internal/telemetry/publisher.go
package telemetry

import "github.com/rs/zerolog"

// NopPublisher discards everything. Used when no telemetry backend is wired.
type NopPublisher struct{}

func (NopPublisher) SetTag(string, any) error     { return nil }
func (NopPublisher) Publish(string, []byte) error { return nil }

// LogPublisher writes tags and payloads to the log. It stands in for a real
// backend during commissioning and keeps telemetry observable on a bench.
type LogPublisher struct {
	Log zerolog.Logger
}

func (p LogPublisher) SetTag(name string, value any) error {
	p.Log.Debug().Str("tag", name).Interface("value", value).Msg("tag updated")
	return nil
}

func (p LogPublisher) Publish(channel string, payload []byte) error {
	p.Log.Info().Str("channel", channel).RawJSON("payload", payload).Msg("telemetry published")
	return nil
}
