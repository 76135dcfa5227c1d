package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weave",
	Short: "Weave renders fragment documents into encoding-safe markup",
	Long: `Weave assembles markup from untrusted text, trusted text, and format
expressions, guaranteeing that untrusted text is escaped exactly once and
trusted text is never re-escaped.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
