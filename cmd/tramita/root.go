package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tramita",
	Short: "Tramita is a document workflow resolution engine",
	Long: `Tramita resolves transition options, hierarchy trees and execution
timelines for documents moving through a configurable workflow. All commands
read the workflow metadata from a YAML bundle passed via --metadata.`,
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
	rootCmd.PersistentFlags().StringP("metadata", "m", "metadata.yaml", "Path to the workflow metadata bundle")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
