package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/tramita/pkg/domain"
)

// TimelineMarkdown renders a timeline projection as markdown, suitable for
// glamour on a TTY or for plain printing.
func TimelineMarkdown(tl *domain.Timeline) string {
	var sb strings.Builder

	sb.WriteString("# Tramitação\n\n")

	sb.WriteString(fmt.Sprintf("## Executados (%d)\n\n", tl.ExecutedCount))
	if tl.ExecutedCount == 0 {
		sb.WriteString("_nenhum passo executado_\n")
	}
	for _, n := range tl.Executed {
		line := fmt.Sprintf("- **%s**", n.StepName)
		if n.ExecutedAt != "" {
			line += fmt.Sprintf(" — %s", n.ExecutedAt)
		}
		if n.Memo != "" {
			line += fmt.Sprintf(" (%s)", n.Memo)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n## Passo atual\n\n")
	if tl.CurrentStepName != "" {
		sb.WriteString(fmt.Sprintf("**%s**\n", tl.CurrentStepName))
	} else {
		sb.WriteString("_passo atual fora da hierarquia_\n")
	}

	sb.WriteString(fmt.Sprintf("\n## Próximos passos (%d)\n\n", tl.NextOptionsCount))
	for i, n := range tl.NextOptions {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("- **%s** (sugerido)\n", n.StepName))
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s\n", n.StepName))
	}
	if tl.NextOptionsCount > 1 {
		sb.WriteString("\n> Mais de um próximo passo possível; confirme o destino antes de tramitar.\n")
	}

	return sb.String()
}

// TimelinePlain renders the timeline as a compact status column, one line
// per step: executed steps first, then the current step, then the next
// options. Colors degrade to plain text on terminals without color support.
func TimelinePlain(tl *domain.Timeline) string {
	var sb strings.Builder
	for _, n := range tl.Executed {
		sb.WriteString(StatusLine(n.StepName, true, false) + "\n")
	}
	if tl.CurrentStepName != "" {
		sb.WriteString(StatusLine(tl.CurrentStepName, false, true) + "\n")
	}
	for _, n := range tl.NextOptions {
		sb.WriteString(StatusLine(n.StepName, false, false) + "\n")
	}
	return sb.String()
}

// StatusLine colors a step line for plain terminal output.
func StatusLine(name string, executed, current bool) string {
	p := termenv.ColorProfile()
	switch {
	case current:
		return termenv.String("> " + name).Foreground(p.Color("#ffeb3b")).Bold().String()
	case executed:
		return termenv.String("✓ " + name).Foreground(p.Color("#4ade80")).String()
	default:
		return termenv.String("· " + name).Faint().String()
	}
}
