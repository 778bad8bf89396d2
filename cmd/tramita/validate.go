package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/tramita/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the metadata bundle for consistency",
	Long: `Builds the hierarchy from the metadata bundle and reports orphaned nodes,
duplicated positions and transition edges referencing unknown steps.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Metadata bundle is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	engine, b, err := newEngine(cmd)
	if err != nil {
		return err
	}

	result, err := engine.Tree(context.Background(), nil)
	if err != nil {
		return err
	}

	defects := 0
	for _, o := range result.Orphans {
		fmt.Printf("orphan node: step %d (%s) at %q references missing parent\n", o.StepID, o.StepName, o.Path)
		defects++
	}
	for _, d := range result.Duplicates {
		fmt.Printf("duplicate position: step %d (%s) appears twice at %q\n", d.StepID, d.StepName, d.Path)
		defects++
	}
	defects += checkEdges(b.snapshot)

	if defects > 0 {
		return fmt.Errorf("%d defect(s) found", defects)
	}
	return nil
}

// checkEdges reports transition edges pointing at steps the catalog does
// not know. The engine tolerates these at resolution time, but they almost
// always indicate a broken export.
func checkEdges(snap *domain.Snapshot) int {
	defects := 0
	for i, e := range snap.Edges {
		if _, ok := snap.Catalog.ByID(e.FromStepID); !ok {
			fmt.Printf("edge %d (%s): unknown origin step %d\n", i, e.DocTypeName, e.FromStepID)
			defects++
		}
		if _, ok := snap.Catalog.ByID(e.ToStepID); !ok {
			fmt.Printf("edge %d (%s): unknown destination step %d\n", i, e.DocTypeName, e.ToStepID)
			defects++
		}
	}
	return defects
}
