package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// commitDoneMsg carries the outcome of Editor.Commit.
type commitDoneMsg struct{ err error }

// commitCmd returns a Bubbletea command that writes the previewed result.
func commitCmd(m model) tea.Cmd {
	ctx, editor, res := m.ctx, m.editor, m.result
	return func() tea.Msg {
		return commitDoneMsg{err: editor.Commit(ctx, res)}
	}
}

// Update handles all Bubbletea update logic for the preview model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case commitDoneMsg:
		return handleCommitDoneMsg(m, msg)
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		if m.ActiveView == ViewPreview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	if m.ActiveView != ViewPreview {
		// Input is ignored while writing and after the outcome is known.
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.ActiveView = ViewCommitting
		return m, commitCmd(m)

	case key.Matches(msg, m.keys.Cancel):
		m.ActiveView = ViewCanceled
		return m, tea.Quit
	}

	// Forward other keys to the viewport for scrolling.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func handleCommitDoneMsg(m model, msg commitDoneMsg) (model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.ActiveView = ViewFailed
	} else {
		m.ActiveView = ViewWritten
	}
	return m, tea.Quit
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-chromeHeight, 1)

	// Re-render so truncation follows the new width.
	m.viewport.SetContent(renderMarks(m.marks, m.width))
	return m, nil
}
