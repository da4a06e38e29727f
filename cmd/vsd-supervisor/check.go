// cmd/vsd-supervisor/check.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <config.yaml>",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("config ok: %s at %s:%d (unit %d), poll %gs\n",
			cfg.Drive.DisplayName,
			cfg.Drive.Host, cfg.Drive.Port, cfg.Drive.UnitID,
			cfg.Drive.PollIntervalSeconds,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
