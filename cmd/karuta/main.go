package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "karuta",
	Short: "Tools for the karuta field simulator",
	Long: `karuta checks card catalog files and deals sample fields to the terminal
using the same layout engine as the server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dealCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
