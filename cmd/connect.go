package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"warpanel/pkg/app"
	"warpanel/pkg/config"
	"warpanel/pkg/serial"
)

var (
	connectBaud    int
	connectData    int
	connectStop    int
	connectParity  string
	connectTimeout time.Duration
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect [port|profile]",
	Short: "Connect to the engine and open the panel",
	Long: `Connect to the WiFi engine over a serial port and open the front
panel UI. The argument may be a serial port path or a saved profile name;
with no argument the default link settings are used.

Examples:
  warpanel connect /dev/ttyACM0
  warpanel connect /dev/ttyUSB0 -b 230400
  warpanel connect field-kit`,
	Aliases: []string{"c", "open"},
	Args:    cobra.MaximumNArgs(1),
	Run:     runConnect,
}

func init() {
	connectCmd.Flags().IntVarP(&connectBaud, "baud", "b", 115200, "baud rate")
	connectCmd.Flags().IntVarP(&connectData, "data", "d", 8, "data bits (5-8)")
	connectCmd.Flags().IntVarP(&connectStop, "stop", "s", 1, "stop bits (1-2)")
	connectCmd.Flags().StringVar(&connectParity, "parity", "none", "parity (none, odd, even)")
	connectCmd.Flags().DurationVarP(&connectTimeout, "timeout", "t", time.Second, "read timeout")
}

func runConnect(cmd *cobra.Command, args []string) {
	link, err := resolveLink(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.RunInteractive(link); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveLink builds the link configuration from the argument and flags.
// A port-looking argument overrides the default port; anything else is
// treated as a profile name.
func resolveLink(cmd *cobra.Command, args []string) (serial.Config, error) {
	link := serial.DefaultConfig()

	if len(args) == 1 {
		arg := args[0]
		if isSerialPort(arg) {
			link.Port = arg
		} else {
			profiles := config.NewFileManager("")
			loaded, err := profiles.Load(arg)
			if err != nil {
				printConnectHints()
				return serial.Config{}, fmt.Errorf("%q is neither a serial port nor a saved profile: %w", arg, err)
			}
			if err := profiles.UpdateLastUsed(arg); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			link = loaded
		}
	}

	// Flags override whatever the profile or defaults supplied.
	if cmd.Flags().Changed("baud") {
		link.BaudRate = connectBaud
	}
	if cmd.Flags().Changed("data") {
		link.DataBits = connectData
	}
	if cmd.Flags().Changed("stop") {
		link.StopBits = connectStop
	}
	if cmd.Flags().Changed("parity") {
		link.Parity = connectParity
	}
	if cmd.Flags().Changed("timeout") {
		link.Timeout = connectTimeout
	}

	if err := link.Validate(); err != nil {
		return serial.Config{}, err
	}
	return link, nil
}

// isSerialPort reports whether s looks like a serial device path rather
// than a profile name.
func isSerialPort(s string) bool {
	if strings.HasPrefix(s, "/dev/") {
		return true
	}
	if strings.HasPrefix(strings.ToLower(s), "com") {
		return true
	}
	ports, err := serial.ListPorts()
	if err != nil {
		return false
	}
	for _, p := range ports {
		if p == s {
			return true
		}
	}
	return false
}

func printConnectHints() {
	if ports, err := serial.ListPorts(); err == nil && len(ports) > 0 {
		fmt.Fprintln(os.Stderr, "Available ports:")
		for _, p := range ports {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
	}
	if infos, err := config.NewFileManager("").List(); err == nil && len(infos) > 0 {
		fmt.Fprintln(os.Stderr, "Saved profiles:")
		for _, info := range infos {
			fmt.Fprintf(os.Stderr, "  %s (%s @ %d)\n", info.Name, info.Link.Port, info.Link.BaudRate)
		}
	}
}
