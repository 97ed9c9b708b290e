package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"linefile/internal/rewrite"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	insertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	deleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Strikethrough(true)
	replaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
)

// ModelView renders the preview model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewWritten:
		return successStyle.Render(fmt.Sprintf("Wrote %s: %s", m.result.Path, m.result.Summary)) + "\n"
	case ViewCanceled:
		return "Canceled, nothing written.\n"
	case ViewFailed:
		return failureStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	default:
		return previewView(m)
	}
}

func previewView(m model) string {
	header := headerStyle.Render(m.result.Path) + "  " + m.result.Summary.String()

	footer := fmt.Sprintf("%s • %s • %3.f%%",
		m.keys.Confirm.Help().Key+" "+m.keys.Confirm.Help().Desc,
		m.keys.Cancel.Help().Key+" "+m.keys.Cancel.Help().Desc,
		m.viewport.ScrollPercent()*100,
	)
	if m.ActiveView == ViewCommitting {
		footer = "Writing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		helpStyle.Render(footer),
	)
}

// renderMarks lays out the annotated result one row per mark: a gutter
// with the pre-image index the changeset addressed, a sign and the line text. A replace
// shows the overwritten line above its replacement.
func renderMarks(marks []rewrite.Mark, width int) string {
	digits := len(fmt.Sprint(len(marks)))
	textWidth := width - digits - 3

	var b strings.Builder
	row := func(old int, sign string, text string, style lipgloss.Style) {
		num := strings.Repeat(" ", digits)
		if old >= 0 {
			num = fmt.Sprintf("%*d", digits, old)
		}
		b.WriteString(gutterStyle.Render(num + " " + sign + " "))
		b.WriteString(style.Render(fitWidth(text, textWidth)))
		b.WriteString("\n")
	}

	for _, mk := range marks {
		switch mk.Op {
		case rewrite.OpInsert:
			row(mk.Old, "+", mk.Text, insertStyle)
		case rewrite.OpDelete:
			row(mk.Old, "-", mk.Text, deleteStyle)
		case rewrite.OpReplace:
			row(mk.Old, "-", mk.Prev, deleteStyle)
			row(-1, "~", mk.Text, replaceStyle)
		default:
			row(mk.Old, " ", mk.Text, lipgloss.NewStyle())
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
