package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warpanel/pkg/serial"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all serial ports on the system the engine could be attached to.

On different platforms:
  - Linux: /dev/tty* devices
  - macOS: /dev/cu.* and /dev/tty.* devices
  - Windows: COM ports`,
	Aliases: []string{"ls", "ports"},
	Run:     runList,
}

func runList(cmd *cobra.Command, args []string) {
	ports, err := serial.ListPorts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
		os.Exit(1)
	}

	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		return
	}

	fmt.Printf("Found %d serial port(s):\n", len(ports))
	for _, port := range ports {
		fmt.Printf("  %s\n", port)
	}
}
