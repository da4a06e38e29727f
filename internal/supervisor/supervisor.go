// internal/supervisor/supervisor.go
package supervisor

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/vsd-supervisor/internal/altivar"
	"github.com/tamzrod/vsd-supervisor/internal/machine"
	"github.com/tamzrod/vsd-supervisor/internal/telemetry"
)

// Transport is the drive transport contract the supervisor drives.
type Transport interface {
	Connect() bool
	Disconnect()
	ReadStatus() altivar.Status
	Start() bool
	Stop() bool
	ResetFault() bool
	SetFrequency(hz float64) bool
	SetRampTimes(accelSeconds, decelSeconds float64) bool
}

// Events receives outbound notifications. Consumed by UI and telemetry
// collaborators; implementations must not block.
type Events interface {
	OnStateChanged(state machine.State, fault machine.FaultInfo)
	OnStatusUpdated(status altivar.Status)
	OnAlert(message string)
}

// Settings is the runtime configuration the supervisor reads each cycle.
type Settings struct {
	PollInterval         time.Duration
	MaxConnectionRetries int

	MinFrequencyHz float64
	MaxFrequencyHz float64
	AccelSeconds   float64
	DecelSeconds   float64

	OvercurrentThresholdPct float64
	OvertempThresholdC      float64

	EnableRemoteControl bool
	EnableSpeedControl  bool
}

// commandKind identifies a queued command intent.
type commandKind int

const (
	cmdStart commandKind = iota
	cmdStop
	cmdReset
	cmdSetFrequency
)

type command struct {
	kind        commandKind
	frequencyHz float64
}

// Supervisor reconciles observed drive status against commanded intent on a
// fixed cadence. Command intents arrive on a channel and execute between
// poll cycles; the transport's own exclusivity makes register operations
// safe either way.
type Supervisor struct {
	cfg      Settings
	tr       Transport
	sm       *machine.Machine
	events   Events
	reporter *telemetry.Reporter
	log      zerolog.Logger

	commands chan command

	// Runner-owned state, mutated only from the Run goroutine.
	retryCount       int
	overcurrentShown bool
	overtempShown    bool

	// Last known status, readable by collaborators.
	mu         sync.Mutex
	lastStatus altivar.Status
	lastComm   time.Time
}

// New creates a supervisor. The reporter may be nil to disable telemetry.
func New(cfg Settings, tr Transport, sm *machine.Machine, events Events, reporter *telemetry.Reporter, log zerolog.Logger) *Supervisor {
	return &Supervisor{
		cfg:        cfg,
		tr:         tr,
		sm:         sm,
		events:     events,
		reporter:   reporter,
		log:        log.With().Str("component", "supervisor").Logger(),
		commands:   make(chan command, 8),
		lastStatus: altivar.Offline(),
	}
}

// Run executes the poll cadence until the context is cancelled. The TCP
// session is closed on the way out.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	defer s.tr.Disconnect()

	// Kick off the first connection attempt immediately rather than
	// waiting out a full tick in Disconnected.
	if err := s.sm.Fire(machine.TriggerConnect); err == nil {
		s.log.Info().Msg("initial connection attempt scheduled")
	}

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("supervisor stopping")
			return
		case cmd := <-s.commands:
			s.handleCommand(cmd)
		case <-ticker.C:
			s.cycle(time.Now())
		}
	}
}

// cycle runs one poll iteration: timeout pass, connection advance or status
// reconcile, then unconditional publication.
func (s *Supervisor) cycle(now time.Time) {
	if trigger, fired := s.sm.CheckTimeout(now); fired {
		s.log.Warn().Stringer("trigger", trigger).Msg("state timeout fired")
	}

	switch {
	case s.sm.Current() == machine.Connecting:
		s.advanceConnection()

	case s.sm.Current() == machine.Disconnected:
		_ = s.sm.Fire(machine.TriggerConnect)

	case s.sm.IsConnected():
		status := s.tr.ReadStatus()
		if status.Connected {
			s.mu.Lock()
			s.lastStatus = status
			s.lastComm = now
			s.mu.Unlock()
			s.reconcile(status)
		} else {
			s.log.Warn().Msg("lost connection to drive")
			s.tr.Disconnect()
			_ = s.sm.Fire(machine.TriggerDisconnect)
		}
	}

	s.publish()
}

// advanceConnection performs one connect attempt while in Connecting.
// Repeated failures only bump the bounded retry counter; escaping the state
// is left to its own deadline.
func (s *Supervisor) advanceConnection() {
	if s.tr.Connect() {
		// Push configured ramp times on every fresh session.
		s.tr.SetRampTimes(s.cfg.AccelSeconds, s.cfg.DecelSeconds)
		_ = s.sm.Fire(machine.TriggerConnected)
		s.retryCount = 0
		return
	}

	s.retryCount++
	if s.retryCount >= s.cfg.MaxConnectionRetries {
		s.log.Warn().Int("retries", s.retryCount).Msg("max connection retries reached")
		s.retryCount = 0
	}
}

// reconcile maps one observed status onto state machine triggers and
// threshold warnings.
func (s *Supervisor) reconcile(status altivar.Status) {
	switch {
	case status.Faulted && !s.sm.IsFaulted():
		s.sm.SetFault(strconv.Itoa(status.FaultCode), status.FaultDescription)
		_ = s.sm.Fire(machine.TriggerFault)
		s.events.OnAlert("VSD Fault: " + status.FaultDescription)

	case s.sm.Current() == machine.Starting && status.Running:
		_ = s.sm.Fire(machine.TriggerStarted)

	case s.sm.Current() == machine.Stopping && !status.Running && status.Ready:
		_ = s.sm.Fire(machine.TriggerStopped)

	case s.sm.Current() == machine.Resetting && !status.Faulted && status.Ready:
		_ = s.sm.Fire(machine.TriggerResetComplete)
	}

	// Threshold warnings are edge-triggered: the alert goes out once, on
	// the transition to shown.
	overcurrent := status.MotorCurrentA > s.cfg.OvercurrentThresholdPct
	overtemp := status.DriveTemperatureC > s.cfg.OvertempThresholdC

	if overcurrent && !s.overcurrentShown {
		s.events.OnAlert(fmt.Sprintf("Overcurrent warning: %.1fA", status.MotorCurrentA))
	}
	if overtemp && !s.overtempShown {
		s.events.OnAlert(fmt.Sprintf("Overtemperature warning: %.0fC", status.DriveTemperatureC))
	}

	s.overcurrentShown = overcurrent
	s.overtempShown = overtemp
}

// publish emits the latest snapshot and state every cycle, changed or not.
func (s *Supervisor) publish() {
	status := s.LastStatus()

	s.events.OnStatusUpdated(status)
	s.events.OnStateChanged(s.sm.Current(), s.sm.Fault())

	if s.reporter != nil {
		if err := s.reporter.Report(s.sm.Current(), status); err != nil {
			s.log.Warn().Err(err).Msg("telemetry delivery failed")
		}
	}
}

// LastStatus returns the last known status snapshot.
func (s *Supervisor) LastStatus() altivar.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// LastComm returns the time of the last successful status read.
func (s *Supervisor) LastComm() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastComm
}
