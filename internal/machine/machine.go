// internal/machine/machine.go
package machine

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidTransition is returned when a trigger fires from a state the
// transition table does not allow. Callers gate on the Can* predicates; an
// invalid trigger leaves the state unchanged.
var ErrInvalidTransition = errors.New("machine: invalid transition")

// FaultInfo carries the cause recorded before entering Faulted.
type FaultInfo struct {
	Code        string
	Description string
}

// Machine is the drive lifecycle state machine.
//
// Triggers are serialized: concurrent Fire calls apply one at a time in
// arrival order, so a transition always observes a fully-settled prior
// state. Timeout deadlines are tracked as the entry timestamp of the
// current state and evaluated by CheckTimeout each poll cycle.
type Machine struct {
	mu        sync.Mutex
	state     State
	enteredAt time.Time
	fault     FaultInfo

	log zerolog.Logger
	now func() time.Time
}

// New creates a machine in Disconnected.
func New(log zerolog.Logger) *Machine {
	m := &Machine{
		state: Disconnected,
		log:   log.With().Str("component", "machine").Logger(),
		now:   time.Now,
	}
	m.enteredAt = m.now()
	return m
}

// Fire applies a trigger. Invalid triggers return ErrInvalidTransition and
// leave the state unchanged.
func (m *Machine) Fire(t Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fire(t)
}

// fire applies a trigger with the lock held.
func (m *Machine) fire(t Trigger) error {
	tr, ok := transitions[t]
	if !ok {
		return ErrInvalidTransition
	}

	if tr.sources != nil {
		valid := false
		for _, src := range tr.sources {
			if m.state == src {
				valid = true
				break
			}
		}
		if !valid {
			return ErrInvalidTransition
		}
	}

	m.state = tr.dest
	m.enteredAt = m.now()
	m.enter(tr.dest)
	return nil
}

// enter runs state entry behavior with the lock held.
func (m *Machine) enter(s State) {
	switch s {
	case Ready:
		m.fault = FaultInfo{}
		m.log.Info().Msg("drive state: Ready")
	case Faulted:
		m.log.Error().
			Str("code", m.fault.Code).
			Str("description", m.fault.Description).
			Msg("drive state: Faulted")
	default:
		m.log.Info().Str("state", s.Display()).Msg("drive state changed")
	}
}

// CheckTimeout fires the current state's automatic timeout transition if
// its deadline has elapsed at the given time. Returns the fired trigger.
func (m *Machine) CheckTimeout(now time.Time) (Trigger, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := deadlines[m.state]
	if !ok || now.Sub(m.enteredAt) < d.after {
		return 0, false
	}

	m.log.Warn().
		Str("state", m.state.String()).
		Dur("after", d.after).
		Msg("state deadline elapsed")

	if err := m.fire(d.trigger); err != nil {
		return 0, false
	}
	return d.trigger, true
}

// SetFault records fault information. It must be called immediately before
// firing TriggerFault; entering Ready clears it.
func (m *Machine) SetFault(code, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault = FaultInfo{Code: code, Description: description}
}

// Fault returns the recorded fault information.
func (m *Machine) Fault() FaultInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fault
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ---- predicates ----

// IsConnected reports whether a session to the drive is established.
func (m *Machine) IsConnected() bool {
	s := m.Current()
	return s != Disconnected && s != Connecting
}

// IsRunning reports whether the motor is running.
func (m *Machine) IsRunning() bool {
	return m.Current() == Running
}

// IsReady reports whether the drive is ready for commands.
func (m *Machine) IsReady() bool {
	return m.Current() == Ready
}

// IsFaulted reports whether the drive is in fault state.
func (m *Machine) IsFaulted() bool {
	return m.Current() == Faulted
}

// CanStart reports whether a start command is allowed.
func (m *Machine) CanStart() bool {
	return m.Current() == Ready
}

// CanStop reports whether a stop command is allowed.
func (m *Machine) CanStop() bool {
	s := m.Current()
	return s == Running || s == Starting
}

// CanReset reports whether a fault reset command is allowed.
func (m *Machine) CanReset() bool {
	return m.Current() == Faulted
}
