// internal/telemetry/reporter_test.go
package telemetry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/vsd-supervisor/internal/altivar"
	"github.com/tamzrod/vsd-supervisor/internal/machine"
)

type capturePublisher struct {
	tags     map[string]any
	tagErr   error
	channel  string
	payload  []byte
	pubErr   error
	pubCalls int
}

func (c *capturePublisher) SetTag(name string, value any) error {
	if c.tags == nil {
		c.tags = map[string]any{}
	}
	c.tags[name] = value
	return c.tagErr
}

func (c *capturePublisher) Publish(channel string, payload []byte) error {
	c.pubCalls++
	c.channel = channel
	c.payload = payload
	return c.pubErr
}

func TestReport_TagsAndPayload(t *testing.T) {
	pub := &capturePublisher{}
	r := NewReporter(pub)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	st := altivar.Status{
		Connected:         true,
		Running:           true,
		OutputFrequencyHz: 47.5,
		MotorCurrentA:     3.2,
		MotorVoltageV:     400,
		MotorPowerKw:      1.5,
		DriveTemperatureC: 41,
		DCBusVoltageV:     565,
	}

	if err := r.Report(machine.Running, st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pub.tags["vsd_state"] != "running" {
		t.Fatalf("vsd_state: %v", pub.tags["vsd_state"])
	}
	if pub.tags["vsd_running"] != true {
		t.Fatalf("vsd_running: %v", pub.tags["vsd_running"])
	}
	if pub.tags["vsd_frequency"] != 47.5 {
		t.Fatalf("vsd_frequency: %v", pub.tags["vsd_frequency"])
	}
	if pub.tags["vsd_fault_code"] != 0 {
		t.Fatalf("vsd_fault_code: %v", pub.tags["vsd_fault_code"])
	}

	if pub.channel != "vsd_telemetry" {
		t.Fatalf("channel: %q", pub.channel)
	}

	var p Payload
	if err := json.Unmarshal(pub.payload, &p); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if p.Timestamp != "2026-03-14T09:26:53Z" {
		t.Fatalf("timestamp: %q", p.Timestamp)
	}
	if p.State != "running" || !p.Running || p.Faulted {
		t.Fatalf("payload: %+v", p)
	}
	if p.FrequencyHz != 47.5 || p.DCBusV != 565 {
		t.Fatalf("payload values: %+v", p)
	}
}

func TestReport_TagFailureStillPublishes(t *testing.T) {
	pub := &capturePublisher{tagErr: errors.New("sink down")}
	r := NewReporter(pub)

	err := r.Report(machine.Ready, altivar.Offline())
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if pub.pubCalls != 1 {
		t.Fatalf("payload must still be published, calls=%d", pub.pubCalls)
	}
}
