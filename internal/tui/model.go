package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"

	"linefile/internal/core"
	"linefile/internal/rewrite"
)

// View is the screen the preview is showing.
type View int

const (
	ViewPreview View = iota
	ViewCommitting
	ViewWritten
	ViewCanceled
	ViewFailed
)

// chromeHeight is the number of rows taken by the header and footer.
const chromeHeight = 4

type keyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "write"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// model is the Bubbletea model for the preview screen.
type model struct {
	ActiveView View

	ctx      context.Context
	editor   *core.Editor
	result   *core.Result
	marks    []rewrite.Mark
	viewport viewport.Model
	keys     keyMap
	err      error
	width    int
	height   int
}

// initialModel creates the preview model for an already computed result.
func initialModel(ctx context.Context, editor *core.Editor, result *core.Result, marks []rewrite.Mark, width, height int) model {
	vp := viewport.New(width, max(height-chromeHeight, 1))
	vp.SetContent(renderMarks(marks, width))
	return model{
		ActiveView: ViewPreview,
		ctx:        ctx,
		editor:     editor,
		result:     result,
		marks:      marks,
		viewport:   vp,
		keys:       defaultKeyMap(),
		width:      width,
		height:     height,
	}
}

// Outcome reports whether the result was written and the commit error, if any.
func (m model) Outcome() (bool, error) {
	switch m.ActiveView {
	case ViewWritten:
		return true, nil
	case ViewFailed:
		return false, m.err
	}
	return false, nil
}
