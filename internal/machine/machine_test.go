// internal/machine/machine_test.go
package machine

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestMachine() *Machine {
	return New(zerolog.Nop())
}

func mustFire(t *testing.T, m *Machine, tr Trigger) {
	t.Helper()
	if err := m.Fire(tr); err != nil {
		t.Fatalf("fire %v from %v: %v", tr, m.Current(), err)
	}
}

// drive the machine into Ready through the normal connection path
func toReady(t *testing.T, m *Machine) {
	t.Helper()
	mustFire(t, m, TriggerConnect)
	mustFire(t, m, TriggerConnected)
}

func TestInitialState(t *testing.T) {
	m := newTestMachine()
	if m.Current() != Disconnected {
		t.Fatalf("got %v", m.Current())
	}
}

func TestFullLifecycle(t *testing.T) {
	m := newTestMachine()

	steps := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerConnect, Connecting},
		{TriggerConnected, Ready},
		{TriggerStart, Starting},
		{TriggerStarted, Running},
		{TriggerStop, Stopping},
		{TriggerStopped, Ready},
	}

	for _, s := range steps {
		mustFire(t, m, s.trigger)
		if m.Current() != s.want {
			t.Fatalf("after %v: got %v want %v", s.trigger, m.Current(), s.want)
		}
	}
}

func TestStartInvalidFromNonReady(t *testing.T) {
	setups := [][]Trigger{
		nil,
		{TriggerConnect},
		{TriggerConnect, TriggerConnected, TriggerStart},
		{TriggerConnect, TriggerConnected, TriggerFault},
	}

	for _, setup := range setups {
		m := newTestMachine()
		for _, tr := range setup {
			mustFire(t, m, tr)
		}
		before := m.Current()

		if err := m.Fire(TriggerStart); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("start from %v: expected ErrInvalidTransition, got %v", before, err)
		}
		if m.Current() != before {
			t.Fatalf("start from %v changed state to %v", before, m.Current())
		}
	}
}

func TestDisconnectFromAnyState(t *testing.T) {
	m := newTestMachine()
	toReady(t, m)
	mustFire(t, m, TriggerStart)
	mustFire(t, m, TriggerStarted)

	mustFire(t, m, TriggerDisconnect)
	if m.Current() != Disconnected {
		t.Fatalf("got %v", m.Current())
	}
}

func TestFaultFromRunningAndClearOnReady(t *testing.T) {
	m := newTestMachine()
	toReady(t, m)
	mustFire(t, m, TriggerStart)
	mustFire(t, m, TriggerStarted)

	m.SetFault("9", "Loss of motor phase")
	mustFire(t, m, TriggerFault)

	if m.Current() != Faulted {
		t.Fatalf("got %v", m.Current())
	}
	if fi := m.Fault(); fi.Code != "9" || fi.Description != "Loss of motor phase" {
		t.Fatalf("fault info: %+v", fi)
	}

	mustFire(t, m, TriggerReset)
	mustFire(t, m, TriggerResetComplete)

	if m.Current() != Ready {
		t.Fatalf("got %v", m.Current())
	}
	if fi := m.Fault(); fi != (FaultInfo{}) {
		t.Fatalf("fault info not cleared: %+v", fi)
	}
}

func TestResetOnlyFromFaulted(t *testing.T) {
	m := newTestMachine()
	toReady(t, m)

	if err := m.Fire(TriggerReset); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestConnectingTimeout(t *testing.T) {
	m := newTestMachine()
	base := time.Now()
	m.now = func() time.Time { return base }

	mustFire(t, m, TriggerConnect)

	// Just under the deadline: nothing fires.
	if _, fired := m.CheckTimeout(base.Add(10*time.Second - time.Millisecond)); fired {
		t.Fatalf("deadline fired early")
	}
	if m.Current() != Connecting {
		t.Fatalf("got %v", m.Current())
	}

	tr, fired := m.CheckTimeout(base.Add(10 * time.Second))
	if !fired || tr != TriggerConnectionTimeout {
		t.Fatalf("got %v fired=%v", tr, fired)
	}
	if m.Current() != Disconnected {
		t.Fatalf("got %v", m.Current())
	}
}

func TestStartAndStopTimeoutsEscalateToFaulted(t *testing.T) {
	base := time.Now()

	m := newTestMachine()
	m.now = func() time.Time { return base }
	toReady(t, m)
	mustFire(t, m, TriggerStart)

	if _, fired := m.CheckTimeout(base.Add(30 * time.Second)); !fired {
		t.Fatalf("start deadline did not fire")
	}
	if m.Current() != Faulted {
		t.Fatalf("got %v", m.Current())
	}

	m = newTestMachine()
	m.now = func() time.Time { return base }
	toReady(t, m)
	mustFire(t, m, TriggerStart)
	mustFire(t, m, TriggerStarted)
	mustFire(t, m, TriggerStop)

	if _, fired := m.CheckTimeout(base.Add(30 * time.Second)); !fired {
		t.Fatalf("stop deadline did not fire")
	}
	if m.Current() != Faulted {
		t.Fatalf("got %v", m.Current())
	}
}

func TestResetTimeout(t *testing.T) {
	base := time.Now()
	m := newTestMachine()
	m.now = func() time.Time { return base }
	toReady(t, m)
	m.SetFault("2", "Overcurrent")
	mustFire(t, m, TriggerFault)
	mustFire(t, m, TriggerReset)

	if _, fired := m.CheckTimeout(base.Add(10 * time.Second)); !fired {
		t.Fatalf("reset deadline did not fire")
	}
	if m.Current() != Faulted {
		t.Fatalf("got %v", m.Current())
	}
}

func TestNoTimeoutInStableStates(t *testing.T) {
	base := time.Now()
	m := newTestMachine()
	m.now = func() time.Time { return base }
	toReady(t, m)
	mustFire(t, m, TriggerStart)
	mustFire(t, m, TriggerStarted)

	if _, fired := m.CheckTimeout(base.Add(time.Hour)); fired {
		t.Fatalf("Running must not time out")
	}
}

func TestPredicates(t *testing.T) {
	m := newTestMachine()

	if m.IsConnected() {
		t.Fatalf("Disconnected must not report connected")
	}

	mustFire(t, m, TriggerConnect)
	if m.IsConnected() {
		t.Fatalf("Connecting must not report connected")
	}

	mustFire(t, m, TriggerConnected)
	if !m.IsConnected() || !m.IsReady() || !m.CanStart() {
		t.Fatalf("Ready predicates wrong")
	}
	if m.CanStop() || m.CanReset() {
		t.Fatalf("Ready must not allow stop/reset")
	}

	mustFire(t, m, TriggerStart)
	if !m.CanStop() {
		t.Fatalf("Starting must allow stop")
	}

	mustFire(t, m, TriggerStarted)
	if !m.IsRunning() || !m.CanStop() {
		t.Fatalf("Running predicates wrong")
	}

	m.SetFault("5", "Overtemperature")
	mustFire(t, m, TriggerFault)
	if !m.IsFaulted() || !m.CanReset() {
		t.Fatalf("Faulted predicates wrong")
	}
}

func TestStateDisplay(t *testing.T) {
	if got := Connecting.Display(); got != "Connecting..." {
		t.Fatalf("got %q", got)
	}
	if got := Running.String(); got != "running" {
		t.Fatalf("got %q", got)
	}
}
