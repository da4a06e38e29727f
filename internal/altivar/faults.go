// internal/altivar/faults.go
package altivar

import "fmt"

// faultCodes maps Altivar LFT fault codes to human-readable descriptions.
var faultCodes = map[int]string{
	0:  "No fault",
	2:  "Overcurrent",
	3:  "Overvoltage",
	4:  "Undervoltage",
	5:  "Overtemperature",
	6:  "Motor overload",
	7:  "External fault",
	8:  "Ground fault",
	9:  "Loss of motor phase",
	10: "Communication loss",
	17: "Internal communication",
	18: "Encoder fault",
	24: "Input phase loss",
	25: "DC bus overvoltage",
	30: "IGBT overtemperature",
	38: "Process underload",
	39: "Process overload",
	51: "EEPROM fault",
	64: "Motor short circuit",
	71: "Brake control fault",
}

// FaultDescription returns the description for an Altivar fault code.
// Unrecognized codes yield a generated description.
func FaultDescription(code int) string {
	if desc, ok := faultCodes[code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown fault (%d)", code)
}
