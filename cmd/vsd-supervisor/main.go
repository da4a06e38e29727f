// cmd/vsd-supervisor/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "vsd-supervisor",
	Short: "Supervisor for a Schneider Altivar drive over Modbus TCP",
	Long: `vsd-supervisor polls one Altivar variable-speed drive over Modbus TCP,
tracks its operational lifecycle, and issues validated start/stop/frequency
commands back to the device.

Commands:
  run    start supervising using a YAML configuration file
  check  load and validate a configuration file, then exit`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
