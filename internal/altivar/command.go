// internal/altivar/command.go
package altivar

// ControlWord builds the CMD register value from command flags.
// No IO. No side effects.
func ControlWord(run, reset, reverse bool) uint16 {
	var cmd uint16
	if run {
		cmd |= 1 << ctrlBitRun
	}
	if reverse {
		cmd |= 1 << ctrlBitDirection
	}
	if reset {
		cmd |= 1 << ctrlBitFaultReset
	}
	return cmd
}

// Scaled encodes a physical value into a 0.1-resolution register value.
// Used for frequency setpoints and ramp times; the exact inverse of the
// divide-by-ten applied on decode.
func Scaled(value float64) uint16 {
	return uint16(value * 10)
}
