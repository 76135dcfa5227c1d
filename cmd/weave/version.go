package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/weave"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of weave",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weave version %s\n", strings.TrimSpace(weave.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
