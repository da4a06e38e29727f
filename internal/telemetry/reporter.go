// internal/telemetry/reporter.go
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamzrod/vsd-supervisor/internal/altivar"
	"github.com/tamzrod/vsd-supervisor/internal/machine"
)

// Channel is the telemetry channel name.
const Channel = "vsd_telemetry"

// Publisher is the delivery contract for tags and telemetry payloads.
// Implementations are external collaborators (cloud sinks, brokers, tag
// servers); the reporter never interprets delivery failures.
type Publisher interface {
	SetTag(name string, value any) error
	Publish(channel string, payload []byte) error
}

// Payload is the JSON telemetry document published each cycle.
type Payload struct {
	Timestamp    string  `json:"timestamp"`
	State        string  `json:"state"`
	FrequencyHz  float64 `json:"frequency_hz"`
	CurrentA     float64 `json:"current_a"`
	VoltageV     float64 `json:"voltage_v"`
	PowerKw      float64 `json:"power_kw"`
	TemperatureC float64 `json:"temperature_c"`
	DCBusV       float64 `json:"dc_bus_v"`
	Running      bool    `json:"running"`
	Faulted      bool    `json:"faulted"`
}

// Reporter delivers drive state and the last status snapshot.
// It receives values and writes them verbatim.
// No logic, no state, no interpretation.
type Reporter struct {
	pub Publisher
	now func() time.Time
}

// NewReporter builds a reporter over the given publisher.
func NewReporter(pub Publisher) *Reporter {
	return &Reporter{pub: pub, now: time.Now}
}

// Report publishes the tag set and the telemetry payload for one cycle.
// Partial delivery failures are collected; the rest still goes out.
func (r *Reporter) Report(state machine.State, st altivar.Status) error {
	var errs []string

	tags := []struct {
		name  string
		value any
	}{
		{"vsd_state", state.String()},
		{"vsd_running", st.Running},
		{"vsd_frequency", st.OutputFrequencyHz},
		{"vsd_current", st.MotorCurrentA},
		{"vsd_faulted", st.Faulted},
		{"vsd_fault_code", st.FaultCode},
	}

	for _, tag := range tags {
		if err := r.pub.SetTag(tag.name, tag.value); err != nil {
			errs = append(errs, fmt.Sprintf("tag %s: %v", tag.name, err))
		}
	}

	payload, err := json.Marshal(Payload{
		Timestamp:    r.now().Format(time.RFC3339),
		State:        state.String(),
		FrequencyHz:  st.OutputFrequencyHz,
		CurrentA:     st.MotorCurrentA,
		VoltageV:     st.MotorVoltageV,
		PowerKw:      st.MotorPowerKw,
		TemperatureC: st.DriveTemperatureC,
		DCBusV:       st.DCBusVoltageV,
		Running:      st.Running,
		Faulted:      st.Faulted,
	})
	if err != nil {
		errs = append(errs, fmt.Sprintf("payload marshal: %v", err))
	} else if err := r.pub.Publish(Channel, payload); err != nil {
		errs = append(errs, fmt.Sprintf("publish %s: %v", Channel, err))
	}

	if len(errs) > 0 {
		return errors.New("telemetry: " + strings.Join(errs, " | "))
	}
	return nil
}
