package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance <on|off>",
	Short: "Toggle the server maintenance gate (admin token required)",
	Long: `Toggle the server maintenance gate. Requires the admin token.

While the gate is on the server answers 503 to every request,
including the one that would turn it back off. Turning maintenance
off again requires restarting the server or flipping the gate from
inside the process.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runMaintenance,
}

func runMaintenance(_ *cobra.Command, args []string) error {
	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("invalid argument %q: expected on or off", args[0])
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.SetMaintenance(context.Background(), enabled); err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	if !quiet {
		if enabled {
			fmt.Println("Maintenance mode enabled.")
		} else {
			fmt.Println("Maintenance mode disabled.")
		}
	}
	return nil
}
