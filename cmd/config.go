package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"warpanel/pkg/config"
	"warpanel/pkg/serial"
)

var (
	profilePort    string
	profileBaud    int
	profileData    int
	profileStop    int
	profileParity  string
	profileTimeout time.Duration
)

// configCmd groups the profile management subcommands.
var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage saved link profiles",
	Aliases: []string{"profiles"},
}

var configSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a link profile",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigSave,
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved profiles",
	Aliases: []string{"ls"},
	Run:     runConfigList,
}

var configShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's link settings",
	Args:  cobra.ExactArgs(1),
	Run:   runConfigShow,
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Delete a saved profile",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run:     runConfigDelete,
}

func init() {
	configSaveCmd.Flags().StringVarP(&profilePort, "port", "p", "", "serial port path (required)")
	configSaveCmd.Flags().IntVarP(&profileBaud, "baud", "b", 115200, "baud rate")
	configSaveCmd.Flags().IntVarP(&profileData, "data", "d", 8, "data bits (5-8)")
	configSaveCmd.Flags().IntVarP(&profileStop, "stop", "s", 1, "stop bits (1-2)")
	configSaveCmd.Flags().StringVar(&profileParity, "parity", "none", "parity (none, odd, even)")
	configSaveCmd.Flags().DurationVarP(&profileTimeout, "timeout", "t", time.Second, "read timeout")
	configSaveCmd.MarkFlagRequired("port")

	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDeleteCmd)
}

func runConfigSave(cmd *cobra.Command, args []string) {
	link := serial.Config{
		Port:     profilePort,
		BaudRate: profileBaud,
		DataBits: profileData,
		StopBits: profileStop,
		Parity:   profileParity,
		Timeout:  profileTimeout,
	}

	profiles := config.NewFileManager("")
	if err := profiles.Save(args[0], link); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile %q saved.\n", args[0])
}

func runConfigList(cmd *cobra.Command, args []string) {
	infos, err := config.NewFileManager("").List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(infos) == 0 {
		fmt.Println("No saved profiles.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPORT\tBAUD\tLAST USED")
	for _, info := range infos {
		lastUsed := "never"
		if !info.LastUsedAt.IsZero() {
			lastUsed = info.LastUsedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", info.Name, info.Link.Port, info.Link.BaudRate, lastUsed)
	}
	w.Flush()
}

func runConfigShow(cmd *cobra.Command, args []string) {
	link, err := config.NewFileManager("").Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile: %s\n", args[0])
	fmt.Printf("  Port:      %s\n", link.Port)
	fmt.Printf("  Baud rate: %d\n", link.BaudRate)
	fmt.Printf("  Data bits: %d\n", link.DataBits)
	fmt.Printf("  Stop bits: %d\n", link.StopBits)
	fmt.Printf("  Parity:    %s\n", link.Parity)
	fmt.Printf("  Timeout:   %s\n", link.Timeout)
}

func runConfigDelete(cmd *cobra.Command, args []string) {
	profiles := config.NewFileManager("")
	if !profiles.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: profile %q not found\n", args[0])
		os.Exit(1)
	}
	if err := profiles.Delete(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile %q deleted.\n", args[0])
}
