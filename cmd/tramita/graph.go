package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/tramita/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the hierarchy graph visualization",
	Long: `Builds the step hierarchy from the metadata bundle and outputs a Mermaid
diagram (graph TD). When the bundle carries a document and history section,
executed steps and the current step are highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, b, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing tramita: %v\n", err)
			os.Exit(1)
		}

		history, err := b.History()
		if err != nil {
			fmt.Printf("Error reading history: %v\n", err)
			os.Exit(1)
		}

		result, err := engine.Tree(context.Background(), history)
		if err != nil {
			fmt.Printf("Error building hierarchy: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if doc, ok, err := b.Document(); err != nil {
			fmt.Printf("Error reading document: %v\n", err)
			os.Exit(1)
		} else if ok {
			overlay = &graph.Overlay{CurrentStepID: doc.CurrentStepID}
		}

		fmt.Print(graph.GenerateMermaid(result.Roots, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
