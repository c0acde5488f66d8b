package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/truman"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of truman",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("truman version %s\n", strings.TrimSpace(truman.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
