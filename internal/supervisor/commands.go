// internal/supervisor/commands.go
package supervisor

import (
	"github.com/tamzrod/vsd-supervisor/internal/machine"
)

// Start queues a start command intent.
func (s *Supervisor) Start() {
	s.enqueue(command{kind: cmdStart})
}

// Stop queues a stop command intent.
func (s *Supervisor) Stop() {
	s.enqueue(command{kind: cmdStop})
}

// ResetFault queues a fault reset command intent.
func (s *Supervisor) ResetFault() {
	s.enqueue(command{kind: cmdReset})
}

// SetFrequency queues a frequency setpoint intent.
func (s *Supervisor) SetFrequency(hz float64) {
	s.enqueue(command{kind: cmdSetFrequency, frequencyHz: hz})
}

// enqueue hands a command to the Run loop. A full queue drops the intent
// rather than blocking the caller.
func (s *Supervisor) enqueue(cmd command) {
	select {
	case s.commands <- cmd:
	default:
		s.log.Warn().Int("kind", int(cmd.kind)).Msg("command queue full, intent dropped")
	}
}

func (s *Supervisor) handleCommand(cmd command) {
	switch cmd.kind {
	case cmdStart:
		s.handleStart()
	case cmdStop:
		s.handleStop()
	case cmdReset:
		s.handleReset()
	case cmdSetFrequency:
		s.handleSetFrequency(cmd.frequencyHz)
	}
}

// handleStart validates and executes a start intent: permission flag, state
// guard, transport write, then the state trigger only on write success.
func (s *Supervisor) handleStart() {
	s.log.Info().Msg("start command received")

	if !s.cfg.EnableRemoteControl {
		s.log.Warn().Msg("remote control is disabled")
		s.events.OnAlert("Remote control is disabled in configuration")
		return
	}
	if !s.sm.CanStart() {
		s.log.Warn().Stringer("state", s.sm.Current()).Msg("cannot start in current state")
		return
	}

	if s.tr.Start() {
		_ = s.sm.Fire(machine.TriggerStart)
	} else {
		s.log.Error().Msg("failed to send start command")
	}
}

func (s *Supervisor) handleStop() {
	s.log.Info().Msg("stop command received")

	if !s.cfg.EnableRemoteControl {
		s.log.Warn().Msg("remote control is disabled")
		s.events.OnAlert("Remote control is disabled in configuration")
		return
	}
	if !s.sm.CanStop() {
		s.log.Warn().Stringer("state", s.sm.Current()).Msg("cannot stop in current state")
		return
	}

	if s.tr.Stop() {
		_ = s.sm.Fire(machine.TriggerStop)
	} else {
		s.log.Error().Msg("failed to send stop command")
	}
}

func (s *Supervisor) handleReset() {
	s.log.Info().Msg("fault reset command received")

	if !s.cfg.EnableRemoteControl {
		s.log.Warn().Msg("remote control is disabled")
		s.events.OnAlert("Remote control is disabled in configuration")
		return
	}
	if !s.sm.CanReset() {
		s.log.Warn().Stringer("state", s.sm.Current()).Msg("cannot reset in current state")
		return
	}

	if s.tr.ResetFault() {
		_ = s.sm.Fire(machine.TriggerReset)
	} else {
		s.log.Error().Msg("failed to send reset command")
	}
}

// handleSetFrequency clamps the requested setpoint to the configured range
// before transmission. Out-of-range values are clamped, not rejected.
func (s *Supervisor) handleSetFrequency(hz float64) {
	s.log.Info().Float64("hz", hz).Msg("frequency setpoint received")

	if !s.cfg.EnableSpeedControl {
		s.log.Warn().Msg("speed control is disabled")
		s.events.OnAlert("Speed control is disabled in configuration")
		return
	}

	if hz < s.cfg.MinFrequencyHz {
		hz = s.cfg.MinFrequencyHz
	}
	if hz > s.cfg.MaxFrequencyHz {
		hz = s.cfg.MaxFrequencyHz
	}

	if s.tr.SetFrequency(hz) {
		s.log.Info().Float64("hz", hz).Msg("frequency setpoint applied")
	} else {
		s.log.Error().Msg("failed to set frequency")
	}
}
