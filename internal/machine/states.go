// internal/machine/states.go
package machine

import "time"

// State is the drive lifecycle state. Exactly one is current at any time.
type State int

const (
	Disconnected State = iota
	Connecting
	Ready
	Starting
	Running
	Stopping
	Faulted
	Resetting
)

var stateNames = map[State]string{
	Disconnected: "disconnected",
	Connecting:   "connecting",
	Ready:        "ready",
	Starting:     "starting",
	Running:      "running",
	Stopping:     "stopping",
	Faulted:      "faulted",
	Resetting:    "resetting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Display returns the human-readable state description.
func (s State) Display() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting..."
	case Ready:
		return "Ready"
	case Starting:
		return "Starting..."
	case Running:
		return "Running"
	case Stopping:
		return "Stopping..."
	case Faulted:
		return "Faulted"
	case Resetting:
		return "Resetting..."
	}
	return s.String()
}

// Trigger is a state machine event.
type Trigger int

const (
	TriggerConnect Trigger = iota
	TriggerConnected
	TriggerConnectionTimeout
	TriggerDisconnect
	TriggerStart
	TriggerStarted
	TriggerStartTimeout
	TriggerStop
	TriggerStopped
	TriggerStopTimeout
	TriggerFault
	TriggerReset
	TriggerResetComplete
	TriggerResetTimeout
)

var triggerNames = map[Trigger]string{
	TriggerConnect:           "connect",
	TriggerConnected:         "connected",
	TriggerConnectionTimeout: "connection_timeout",
	TriggerDisconnect:        "disconnect",
	TriggerStart:             "start",
	TriggerStarted:           "started",
	TriggerStartTimeout:      "start_timeout",
	TriggerStop:              "stop",
	TriggerStopped:           "stopped",
	TriggerStopTimeout:       "stop_timeout",
	TriggerFault:             "fault",
	TriggerReset:             "reset",
	TriggerResetComplete:     "reset_complete",
	TriggerResetTimeout:      "reset_timeout",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "unknown"
}

// transition is one row of the transition table.
// A nil sources slice means the trigger fires from any state.
type transition struct {
	sources []State
	dest    State
}

// transitions is the full lifecycle transition table.
var transitions = map[Trigger]transition{
	// Connection transitions
	TriggerConnect:           {sources: []State{Disconnected}, dest: Connecting},
	TriggerConnected:         {sources: []State{Connecting}, dest: Ready},
	TriggerConnectionTimeout: {sources: []State{Connecting}, dest: Disconnected},
	TriggerDisconnect:        {sources: nil, dest: Disconnected},

	// Start/stop transitions
	TriggerStart:        {sources: []State{Ready}, dest: Starting},
	TriggerStarted:      {sources: []State{Starting}, dest: Running},
	TriggerStartTimeout: {sources: []State{Starting}, dest: Faulted},
	TriggerStop:         {sources: []State{Running, Starting}, dest: Stopping},
	TriggerStopped:      {sources: []State{Stopping}, dest: Ready},
	TriggerStopTimeout:  {sources: []State{Stopping}, dest: Faulted},

	// Fault transitions
	TriggerFault:         {sources: nil, dest: Faulted},
	TriggerReset:         {sources: []State{Faulted}, dest: Resetting},
	TriggerResetComplete: {sources: []State{Resetting}, dest: Ready},
	TriggerResetTimeout:  {sources: []State{Resetting}, dest: Faulted},
}

// deadline describes the automatic timeout transition for a state.
type deadline struct {
	after   time.Duration
	trigger Trigger
}

// deadlines holds the per-state timeout table. States without an entry
// never time out.
var deadlines = map[State]deadline{
	Connecting: {after: 10 * time.Second, trigger: TriggerConnectionTimeout},
	Starting:   {after: 30 * time.Second, trigger: TriggerStartTimeout},
	Stopping:   {after: 30 * time.Second, trigger: TriggerStopTimeout},
	Resetting:  {after: 10 * time.Second, trigger: TriggerResetTimeout},
}
