package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressSteps renders the wizard step indicator: done steps with a
// check, the current step highlighted, pending steps muted.
type ProgressSteps struct {
	Labels  []string
	Current int
}

// Render draws the indicator on a single line.
func (p ProgressSteps) Render(s Styles) string {
	parts := make([]string, 0, len(p.Labels))
	for i, label := range p.Labels {
		switch {
		case i < p.Current:
			parts = append(parts, s.StepDone.Render("✓ "+label))
		case i == p.Current:
			parts = append(parts, s.StepCurrent.Render("● "+label))
		default:
			parts = append(parts, s.StepPending.Render("○ "+label))
		}
	}
	return strings.Join(parts, s.Muted.Render("  ─  "))
}

// KeyHint is one footer shortcut.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderHints draws the footer shortcut line.
func RenderHints(s Styles, hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.Bold.Render(h.Key)+s.Muted.Render(" "+h.Desc))
	}
	return s.Footer.Render(strings.Join(parts, s.Muted.Render("  ·  ")))
}

// Table renders static tabular data for the list commands.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table.
func (t *Table) View(s Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(s.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	headerStyle := s.Bold.Padding(0, 1)
	rowStyle := s.Body.Padding(0, 1)

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(s.Muted.Render(strings.Repeat("─", total)) + "\n")

	if len(t.Rows) == 0 {
		sb.WriteString(s.Muted.Render(" (empty)") + "\n")
		return sb.String()
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(rowStyle.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
