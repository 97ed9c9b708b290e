package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"linefile/internal/core"
	"linefile/internal/rewrite"
	"linefile/pkg/change"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	tabWidth      = 4
)

// fitWidth expands tabs and cuts s to at most maxWidth display cells,
// marking a cut line with an ellipsis.
func fitWidth(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	if maxWidth <= 0 {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run previews cs against path and lets the user write or discard the
// result. It reports whether the file was written.
func Run(ctx context.Context, editor *core.Editor, path string, cs change.Changeset) (bool, error) {
	res, err := editor.Preview(ctx, path, cs)
	if err != nil {
		return false, err
	}
	marks, err := rewrite.Annotate(res.Before, res.Changes)
	if err != nil {
		return false, err
	}

	a := &teaModelAdapter{initialModel(ctx, editor, res, marks, defaultWidth, defaultHeight)}
	p := tea.NewProgram(a, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return false, err
	}
	return a.m.Outcome()
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
