// internal/altivar/status_test.go
package altivar

import "testing"

func block() []uint16 {
	return make([]uint16, StatusBlockLen)
}

func TestDecode_FaultBitOnly(t *testing.T) {
	regs := block()
	regs[0] = 1 << 3 // fault bit

	st, err := Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !st.Faulted {
		t.Fatalf("expected faulted")
	}
	if st.Ready || st.Running || st.Warning || st.AtReference {
		t.Fatalf("expected all other flags clear: %+v", st)
	}
	if !st.DirectionForward {
		t.Fatalf("direction bit clear must decode as forward")
	}
}

func TestDecode_ReadyRunningScenario(t *testing.T) {
	regs := block()
	regs[0] = 0x0003 // ready + running
	regs[1] = 500    // 50.0 Hz
	regs[2] = 15     // 1.5 A
	regs[20] = 0

	st, err := Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !st.Ready || !st.Running || st.Faulted {
		t.Fatalf("unexpected flags: %+v", st)
	}
	if st.OutputFrequencyHz != 50.0 {
		t.Fatalf("frequency: got %v want 50.0", st.OutputFrequencyHz)
	}
	if st.MotorCurrentA != 1.5 {
		t.Fatalf("current: got %v want 1.5", st.MotorCurrentA)
	}
	if st.FaultCode != 0 || st.FaultDescription != "No fault" {
		t.Fatalf("fault: got %d %q", st.FaultCode, st.FaultDescription)
	}
	if !st.Connected {
		t.Fatalf("decoded status must report connected")
	}
}

func TestDecode_ScalesAndOffsets(t *testing.T) {
	regs := block()
	regs[3] = 400 // voltage, unscaled
	regs[4] = 55  // 5.5 kW
	regs[9] = 42  // temperature, unscaled
	regs[10] = 565

	st, err := Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.MotorVoltageV != 400 {
		t.Fatalf("voltage: got %v", st.MotorVoltageV)
	}
	if st.MotorPowerKw != 5.5 {
		t.Fatalf("power: got %v", st.MotorPowerKw)
	}
	if st.DriveTemperatureC != 42 {
		t.Fatalf("temperature: got %v", st.DriveTemperatureC)
	}
	if st.DCBusVoltageV != 565 {
		t.Fatalf("dc bus: got %v", st.DCBusVoltageV)
	}
}

func TestDecode_UnknownFaultCode(t *testing.T) {
	regs := block()
	regs[20] = 99

	st, err := Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.FaultDescription != "Unknown fault (99)" {
		t.Fatalf("got %q", st.FaultDescription)
	}
}

func TestDecode_ShortBlockRejected(t *testing.T) {
	st, err := Decode(make([]uint16, 5))
	if err == nil {
		t.Fatalf("expected error for short block")
	}
	if st.Connected {
		t.Fatalf("rejected decode must not report connected")
	}
}

func TestFrequencyRoundTrip(t *testing.T) {
	reg := Scaled(42.3)
	if reg != 423 {
		t.Fatalf("encode: got %d want 423", reg)
	}

	regs := block()
	regs[1] = reg
	st, err := Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.OutputFrequencyHz != 42.3 {
		t.Fatalf("decode: got %v want 42.3", st.OutputFrequencyHz)
	}
}

func TestControlWord(t *testing.T) {
	cases := []struct {
		run, reset, reverse bool
		want                uint16
	}{
		{false, false, false, 0x0000},
		{true, false, false, 0x0001},
		{true, false, true, 0x0003},
		{false, true, false, 0x0080},
		{true, true, true, 0x0083},
	}

	for _, c := range cases {
		got := ControlWord(c.run, c.reset, c.reverse)
		if got != c.want {
			t.Fatalf("ControlWord(%v,%v,%v): got 0x%04x want 0x%04x",
				c.run, c.reset, c.reverse, got, c.want)
		}
	}
}

func TestOffline_Defaults(t *testing.T) {
	st := Offline()

	if st.Connected {
		t.Fatalf("offline status must not report connected")
	}
	if st.OutputFrequencyHz != 0 || st.MotorCurrentA != 0 || st.DCBusVoltageV != 0 {
		t.Fatalf("offline readings must be zero: %+v", st)
	}
	if !st.DirectionForward {
		t.Fatalf("direction defaults to forward")
	}
	if st.FaultDescription != "No fault" {
		t.Fatalf("got %q", st.FaultDescription)
	}
}
