// internal/altivar/status.go
package altivar

import "fmt"

// Status is one decoded snapshot of the drive.
// It is a value: produced fresh per poll, never mutated after decode.
type Status struct {
	Connected bool

	Ready            bool
	Running          bool
	Faulted          bool
	Warning          bool
	AtReference      bool
	DirectionForward bool

	OutputFrequencyHz float64
	MotorCurrentA     float64
	MotorVoltageV     float64
	MotorPowerKw      float64
	DriveTemperatureC float64
	DCBusVoltageV     float64

	FaultCode        int
	FaultDescription string
}

// Offline returns the status reported while no connection is up.
// Every reading holds its default value so a disconnected snapshot never
// carries stale data. Direction defaults to forward.
func Offline() Status {
	return Status{
		DirectionForward: true,
		FaultDescription: FaultDescription(0),
	}
}

// Decode converts one raw status block (ETA through LFT) into a Status.
// The block must be exactly StatusBlockLen registers; anything else returns
// an offline status and an error.
func Decode(regs []uint16) (Status, error) {
	if len(regs) != int(StatusBlockLen) {
		return Offline(), fmt.Errorf(
			"altivar: status block must be %d registers, got %d",
			StatusBlockLen, len(regs),
		)
	}

	eta := regs[blockStatusWord]
	code := int(regs[blockFaultCode])

	return Status{
		Connected: true,

		Ready:            eta&(1<<statusBitReady) != 0,
		Running:          eta&(1<<statusBitRunning) != 0,
		DirectionForward: eta&(1<<statusBitDirection) == 0,
		Faulted:          eta&(1<<statusBitFault) != 0,
		Warning:          eta&(1<<statusBitWarning) != 0,
		AtReference:      eta&(1<<statusBitAtReference) != 0,

		OutputFrequencyHz: float64(regs[blockFrequency]) / 10.0,
		MotorCurrentA:     float64(regs[blockCurrent]) / 10.0,
		MotorVoltageV:     float64(regs[blockVoltage]),
		MotorPowerKw:      float64(regs[blockPower]) / 10.0,
		DriveTemperatureC: float64(regs[blockTemperature]),
		DCBusVoltageV:     float64(regs[blockDCBus]),

		FaultCode:        code,
		FaultDescription: FaultDescription(code),
	}, nil
}
