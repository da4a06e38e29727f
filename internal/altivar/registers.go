// internal/altivar/registers.go
package altivar

// Modbus register map for Schneider Altivar series drives (ATV320/ATV340).
// These values define the device protocol and MUST NOT be configurable.
//
// Register numbers are the 1-based device addresses from the Altivar
// documentation; subtract 1 for the on-wire address (WireAddress).

// ---- CONTROL REGISTERS (holding, read/write) ----

// RegControlWord is the CMD control word register.
const RegControlWord uint16 = 8501

// RegFrequencyRef is the LFRD frequency reference setpoint (0.1 Hz resolution).
const RegFrequencyRef uint16 = 8502

// RegAccelTime is the ACC acceleration time (0.1 s resolution).
const RegAccelTime uint16 = 8601

// RegDecelTime is the DEC deceleration time (0.1 s resolution).
const RegDecelTime uint16 = 8602

// ---- STATUS REGISTERS (input, read-only) ----

// RegStatusWord is the ETA status word register and the start of the
// contiguous status block.
const RegStatusWord uint16 = 3201

// StatusBlockLen is the number of registers in one status block read
// (ETA through LFT inclusive).
const StatusBlockLen uint16 = 21

// Offsets of the interesting registers within the status block.
const (
	blockStatusWord  = 0  // ETA
	blockFrequency   = 1  // RFRD, 0.1 Hz
	blockCurrent     = 2  // LCR, 0.1 A
	blockVoltage     = 3  // UOP, 1 V
	blockPower       = 4  // OPR, 0.1 kW
	blockTemperature = 9  // THD, 1 C
	blockDCBus       = 10 // UDC, 1 V
	blockFaultCode   = 20 // LFT
)

// ---- CONTROL WORD BITS (CMD) ----

const (
	ctrlBitRun        = 0 // run command
	ctrlBitDirection  = 1 // forward (0) / reverse (1)
	ctrlBitFaultReset = 7 // fault reset command
)

// ---- STATUS WORD BITS (ETA) ----

const (
	statusBitReady       = 0  // drive ready
	statusBitRunning     = 1  // motor running
	statusBitDirection   = 2  // actual direction, set means reverse
	statusBitFault       = 3  // fault active
	statusBitWarning     = 7  // warning active
	statusBitAtReference = 10 // speed at reference
)

// WireAddress converts a 1-based device register number to the 0-based
// address used on the wire.
func WireAddress(register uint16) uint16 {
	return register - 1
}
