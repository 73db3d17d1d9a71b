// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cin-rms",
	Short: "cin-rms - control node for the CN/MS media control protocol",
	Long: `cin-rms implements a control node (CN) endpoint for the binary media
control protocol spoken with a media server (MS) over unix datagram sockets.

It registers with the media server via the CNISUP/REGISTER handshake and then
services call-control messages. A decode subcommand turns a hand-authored
hex dump into a pretty-printed packet for protocol debugging.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(decodeCmd)
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
