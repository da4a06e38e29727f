// internal/transport/drive.go
package transport

import (
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/rs/zerolog"

	"github.com/tamzrod/vsd-supervisor/internal/altivar"
)

// RegisterClient abstracts the Modbus register operations the drive needs.
// Satisfied by the goburrow modbus.Client.
type RegisterClient interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// DialFunc opens one Modbus TCP session. ONE attempt per call.
type DialFunc func() (RegisterClient, io.Closer, error)

// Config is the drive connection config.
type Config struct {
	Host    string
	Port    int
	UnitID  uint8
	Timeout time.Duration
}

// Drive is the exclusive-access Modbus TCP transport for one drive.
//
// One mutex serializes connect, disconnect, reads and writes: at most one
// register operation is in flight at any time, even when the poll loop and
// command handlers race. Failures never escape as errors; every operation
// degrades to a boolean or a disconnected status and logs the cause.
type Drive struct {
	mu   sync.Mutex
	dial DialFunc
	log  zerolog.Logger

	// resetDwell is how long the fault-reset bit is held before clearing.
	resetDwell time.Duration

	client    RegisterClient
	closer    io.Closer
	connected bool
}

// New creates a drive transport for a fixed host:port:unit-id triple.
// No connection is attempted until Connect.
func New(cfg Config, log zerolog.Logger) *Drive {
	return &Drive{
		dial:       tcpDialer(cfg),
		log:        log.With().Str("component", "transport").Logger(),
		resetDwell: 500 * time.Millisecond,
	}
}

// tcpDialer returns the production dial function: one goburrow TCP handler
// per session.
func tcpDialer(cfg Config) DialFunc {
	endpoint := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return func() (RegisterClient, io.Closer, error) {
		h := modbus.NewTCPClientHandler(endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID

		if err := h.Connect(); err != nil {
			return nil, nil, err
		}
		return modbus.NewClient(h), h, nil
	}
}

// Connect opens the TCP session. Idempotent: an existing session is closed
// and redialed. Returns false on any failure.
func (d *Drive) Connect() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closeLocked()

	client, closer, err := d.dial()
	if err != nil {
		d.log.Warn().Err(err).Msg("connection to drive failed")
		return false
	}

	d.client = client
	d.closer = closer
	d.connected = true
	d.log.Info().Msg("connected to drive")
	return true
}

// Disconnect closes the session if open. Always safe to call.
func (d *Drive) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		d.log.Info().Msg("disconnected from drive")
	}
	d.closeLocked()
}

// IsConnected reports whether a session is established.
func (d *Drive) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// ReadStatus reads the full status block and decodes it. When no session is
// up it returns an offline status without any register IO. Any failure marks
// the connection dead; a later Connect must reestablish it.
func (d *Drive) ReadStatus() altivar.Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return altivar.Offline()
	}

	raw, err := d.client.ReadInputRegisters(
		altivar.WireAddress(altivar.RegStatusWord),
		altivar.StatusBlockLen,
	)
	if err != nil {
		d.log.Error().Err(err).Msg("status block read failed")
		d.dropLocked()
		return altivar.Offline()
	}

	st, err := altivar.Decode(unpackRegisters(raw))
	if err != nil {
		// A malformed status block leaves the session in doubt.
		d.log.Error().Err(err).Msg("status block decode failed")
		d.dropLocked()
		return altivar.Offline()
	}

	return st
}

// WriteControlWord writes the CMD register from command flags.
func (d *Drive) WriteControlWord(run, reset, reverse bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.writeLocked(altivar.RegControlWord, altivar.ControlWord(run, reset, reverse)) {
		return false
	}
	d.log.Debug().
		Bool("run", run).Bool("reset", reset).Bool("reverse", reverse).
		Msg("control word written")
	return true
}

// Start sends the run command.
func (d *Drive) Start() bool {
	return d.WriteControlWord(true, false, false)
}

// Stop clears the run command.
func (d *Drive) Stop() bool {
	return d.WriteControlWord(false, false, false)
}

// SetFrequency writes the frequency reference setpoint.
func (d *Drive) SetFrequency(hz float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.writeLocked(altivar.RegFrequencyRef, altivar.Scaled(hz)) {
		return false
	}
	d.log.Debug().Float64("hz", hz).Msg("frequency setpoint written")
	return true
}

// SetRampTimes writes acceleration then deceleration time. The first
// failure aborts; both writes happen under one lock hold.
func (d *Drive) SetRampTimes(accelSeconds, decelSeconds float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.writeLocked(altivar.RegAccelTime, altivar.Scaled(accelSeconds)) {
		return false
	}
	if !d.writeLocked(altivar.RegDecelTime, altivar.Scaled(decelSeconds)) {
		return false
	}
	d.log.Debug().
		Float64("accel_s", accelSeconds).Float64("decel_s", decelSeconds).
		Msg("ramp times written")
	return true
}

// ResetFault pulses the fault-reset bit: set, hold for the dwell, clear.
// Both writes must succeed.
func (d *Drive) ResetFault() bool {
	if !d.WriteControlWord(false, true, false) {
		return false
	}
	time.Sleep(d.resetDwell)
	return d.WriteControlWord(false, false, false)
}

// writeLocked performs one register write with the lock held and classifies
// the failure. A device-reported exception rejects the write but keeps the
// session; any transport error marks the connection dead.
func (d *Drive) writeLocked(register, value uint16) bool {
	if !d.connected {
		return false
	}

	_, err := d.client.WriteSingleRegister(altivar.WireAddress(register), value)
	if err == nil {
		return true
	}

	var devErr *modbus.ModbusError
	if errors.As(err, &devErr) {
		d.log.Error().Err(err).Uint16("register", register).Msg("drive rejected register write")
		return false
	}

	d.log.Error().Err(err).Uint16("register", register).Msg("register write failed")
	d.dropLocked()
	return false
}

// dropLocked marks the connection dead and releases the socket.
// Caller holds the lock.
func (d *Drive) dropLocked() {
	d.closeLocked()
}

// closeLocked closes any open session. Caller holds the lock.
func (d *Drive) closeLocked() {
	if d.closer != nil {
		_ = d.closer.Close()
	}
	d.client = nil
	d.closer = nil
	d.connected = false
}

// unpackRegisters converts a big-endian register payload to values.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
