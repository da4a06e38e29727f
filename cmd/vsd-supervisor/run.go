// cmd/vsd-supervisor/run.go
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tamzrod/vsd-supervisor/internal/altivar"
	"github.com/tamzrod/vsd-supervisor/internal/config"
	"github.com/tamzrod/vsd-supervisor/internal/machine"
	"github.com/tamzrod/vsd-supervisor/internal/supervisor"
	"github.com/tamzrod/vsd-supervisor/internal/telemetry"
	"github.com/tamzrod/vsd-supervisor/internal/transport"
)

var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Run the drive supervisor",
	Args:  cobra.ExactArgs(1),
	RunE:  runSupervisor,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSupervisor(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	log.Info().
		Str("display_name", cfg.Drive.DisplayName).
		Str("host", cfg.Drive.Host).
		Int("port", cfg.Drive.Port).
		Uint8("unit_id", cfg.Drive.UnitID).
		Msg("drive supervisor starting")

	tr := transport.New(transport.Config{
		Host:    cfg.Drive.Host,
		Port:    cfg.Drive.Port,
		UnitID:  cfg.Drive.UnitID,
		Timeout: secondsToDuration(cfg.Drive.TimeoutSeconds),
	}, log)

	sm := machine.New(log)

	reporter := telemetry.NewReporter(telemetry.LogPublisher{
		Log: log.With().Str("component", "telemetry").Logger(),
	})

	sup := supervisor.New(supervisorSettings(cfg), tr, sm, logEvents{log: log}, reporter, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup.Run(ctx)
	log.Info().Msg("drive supervisor stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func supervisorSettings(cfg *config.Config) supervisor.Settings {
	return supervisor.Settings{
		PollInterval:            secondsToDuration(cfg.Drive.PollIntervalSeconds),
		MaxConnectionRetries:    cfg.Drive.MaxConnectionRetries,
		MinFrequencyHz:          cfg.Limits.MinFrequencyHz,
		MaxFrequencyHz:          cfg.Limits.MaxFrequencyHz,
		AccelSeconds:            cfg.Limits.AccelSeconds,
		DecelSeconds:            cfg.Limits.DecelSeconds,
		OvercurrentThresholdPct: cfg.Limits.OvercurrentThresholdPct,
		OvertempThresholdC:      cfg.Limits.OvertempThresholdC,
		EnableRemoteControl:     cfg.Control.EnableRemoteControl,
		EnableSpeedControl:      cfg.Control.EnableSpeedControl,
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// logEvents is the CLI's event collaborator: state changes and alerts go to
// the log. A UI or tag server would implement supervisor.Events instead.
type logEvents struct {
	log zerolog.Logger
}

func (e logEvents) OnStateChanged(state machine.State, fault machine.FaultInfo) {
	ev := e.log.Debug().Str("state", state.Display())
	if fault.Code != "" {
		ev = ev.Str("fault_code", fault.Code).Str("fault", fault.Description)
	}
	ev.Msg("drive state published")
}

func (e logEvents) OnStatusUpdated(status altivar.Status) {
	e.log.Debug().
		Bool("connected", status.Connected).
		Bool("running", status.Running).
		Float64("hz", status.OutputFrequencyHz).
		Float64("current_a", status.MotorCurrentA).
		Msg("drive status published")
}

func (e logEvents) OnAlert(message string) {
	e.log.Warn().Str("alert", message).Msg("drive alert")
}
