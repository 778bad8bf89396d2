package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/tramita"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tramita",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tramita version %s\n", strings.TrimSpace(tramita.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
