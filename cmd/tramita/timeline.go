package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/tramita/internal/presentation/tui"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Project the execution timeline of a document",
	Long: `Reads the document and its execution history from the metadata bundle and
prints the executed steps, the current position and the suggested next steps.
On a terminal the output is rendered as styled Markdown; otherwise a compact
status column is printed, one line per step.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTimeline(cmd); err != nil {
			fmt.Printf("Error projecting timeline: %v\n", err)
			os.Exit(1)
		}
	},
}

func runTimeline(cmd *cobra.Command) error {
	engine, b, err := newEngine(cmd)
	if err != nil {
		return err
	}

	doc, ok, err := b.Document()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("metadata bundle has no document section")
	}

	history, err := b.History()
	if err != nil {
		return err
	}

	tl, err := engine.Timeline(context.Background(), doc, history)
	if err != nil {
		return err
	}

	// Styled Markdown only when stdout is a real terminal; everything else
	// gets the status column, which degrades to plain text when piped.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		render := tui.NewRenderer()
		if out, err := render(tui.TimelineMarkdown(tl)); err == nil {
			fmt.Print(out)
			return nil
		}
	}
	fmt.Print(tui.TimelinePlain(tl))
	return nil
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
