package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

var statusColors = map[domain.CaseStatus]string{
	domain.CasePassed:  "#22c55e",
	domain.CaseFailed:  "#ef4444",
	domain.CaseSkipped: "#eab308",
}

// StatusLabel renders a case status in upper case, padded to width and colored for p.
func StatusLabel(p termenv.Profile, s domain.CaseStatus, width int) string {
	label := p.String(fmt.Sprintf("%-*s", width, strings.ToUpper(string(s))))
	if c, ok := statusColors[s]; ok {
		label = label.Foreground(p.Color(c)).Bold()
	}
	return label.String()
}

// ReportMarkdown formats a run report as markdown: a summary table followed by
// the errors and logs of every failed case.
func ReportMarkdown(r *domain.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Report %s\n\n", r.ID)
	fmt.Fprintf(&sb, "Device: **%s** (%s, %s)\n\n", r.Device.Name, r.Device.Idiom, r.Device.Orientation)
	fmt.Fprintf(&sb, "%d passed, %d failed, %d skipped in %s\n\n",
		r.Count(domain.CasePassed), r.Count(domain.CaseFailed), r.Count(domain.CaseSkipped),
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	sb.WriteString("| Case | Status | Duration |\n")
	sb.WriteString("|---|---|---|\n")
	for _, c := range r.Results {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", c.Name, c.Status, c.Duration.Round(time.Millisecond))
	}

	for _, c := range r.Results {
		if c.Status != domain.CaseFailed {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", c.Name)
		for _, e := range c.Errors {
			fmt.Fprintf(&sb, "- %s\n", e)
		}
		if len(c.Logs) > 0 {
			sb.WriteString("\n```\n")
			for _, l := range c.Logs {
				sb.WriteString(l)
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n")
		}
	}
	return sb.String()
}

// PrintSummary writes one line per case and a totals line, for non-interactive output.
func PrintSummary(w io.Writer, p termenv.Profile, r *domain.Report) {
	for _, c := range r.Results {
		fmt.Fprintf(w, "%s %s (%s)\n", StatusLabel(p, c.Status, 8), c.Name, c.Duration.Round(time.Millisecond))
		for _, e := range c.Errors {
			fmt.Fprintf(w, "         %s\n", e)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped\n",
		r.Count(domain.CasePassed), r.Count(domain.CaseFailed), r.Count(domain.CaseSkipped))
}
