package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"linefile/internal/core"
	"linefile/internal/file"
	"linefile/internal/rewrite"
	"linefile/pkg/change"
)

func simulateKeyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// newTestModel previews cs against a single in-memory file holding text.
func newTestModel(t *testing.T, text string, cs change.Changeset) (model, *file.MemStore) {
	t.Helper()
	store := file.NewMemStore(map[string]string{"notes.txt": text})
	editor := core.NewEditor(store)
	res, err := editor.Preview(context.Background(), "notes.txt", cs)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	marks, err := rewrite.Annotate(res.Before, res.Changes)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	return initialModel(context.Background(), editor, res, marks, 80, 24), store
}

// runCmd executes cmd and feeds its message back into the model.
func runCmd(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	m, _ = Update(m, cmd())
	return m
}

func TestConfirmWritesResult(t *testing.T) {
	for _, k := range []string{"enter", "y"} {
		t.Run(k, func(t *testing.T) {
			m, store := newTestModel(t, "a\nb", change.Changeset{change.NewReplace(1, "B")})

			m, cmd := HandleKeyMsg(m, simulateKeyMsg(k))
			if m.ActiveView != ViewCommitting {
				t.Fatalf("ActiveView = %v, want ViewCommitting", m.ActiveView)
			}
			if got := store.Snapshot()["notes.txt"]; got != "a\nb" {
				t.Errorf("file written before the commit command ran: %q", got)
			}

			m = runCmd(t, m, cmd)
			if m.ActiveView != ViewWritten {
				t.Fatalf("ActiveView = %v, want ViewWritten", m.ActiveView)
			}
			if got := store.Snapshot()["notes.txt"]; got != "a\nB" {
				t.Errorf("stored text = %q, want %q", got, "a\nB")
			}
			if written, err := m.Outcome(); !written || err != nil {
				t.Errorf("Outcome() = %v, %v, want true, nil", written, err)
			}
		})
	}
}

func TestCancelWritesNothing(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m, store := newTestModel(t, "a\nb", change.Changeset{change.NewDelete(0)})

			m, cmd := HandleKeyMsg(m, simulateKeyMsg(k))
			if m.ActiveView != ViewCanceled {
				t.Fatalf("ActiveView = %v, want ViewCanceled", m.ActiveView)
			}
			if cmd == nil {
				t.Fatal("cancel should quit the program")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("cancel command did not produce tea.QuitMsg")
			}
			if got := store.Snapshot()["notes.txt"]; got != "a\nb" {
				t.Errorf("canceled preview wrote %q", got)
			}
			if written, err := m.Outcome(); written || err != nil {
				t.Errorf("Outcome() = %v, %v, want false, nil", written, err)
			}
		})
	}
}

func TestKeysIgnoredWhileCommitting(t *testing.T) {
	m, _ := newTestModel(t, "a", change.Changeset{change.NewInsert(1, "b")})
	m, _ = HandleKeyMsg(m, simulateKeyMsg("y"))

	m, cmd := HandleKeyMsg(m, simulateKeyMsg("q"))
	if m.ActiveView != ViewCommitting || cmd != nil {
		t.Errorf("key during commit changed state: view %v, cmd %v", m.ActiveView, cmd != nil)
	}
}

func TestCommitFailureIsReported(t *testing.T) {
	m, store := newTestModel(t, "a\nb", change.Changeset{change.NewDelete(1)})
	if err := store.Write("notes.txt", "changed elsewhere"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	m, cmd := HandleKeyMsg(m, simulateKeyMsg("enter"))
	m = runCmd(t, m, cmd)

	if m.ActiveView != ViewFailed {
		t.Fatalf("ActiveView = %v, want ViewFailed", m.ActiveView)
	}
	written, err := m.Outcome()
	if written || !errors.Is(err, core.ErrStale) {
		t.Errorf("Outcome() = %v, %v, want false, ErrStale", written, err)
	}
	if !strings.Contains(ModelView(m), "Error:") {
		t.Errorf("failure view = %q", ModelView(m))
	}
}

func TestWindowResize(t *testing.T) {
	long := strings.Repeat("x", 100)
	m, _ := newTestModel(t, long, nil)

	m, _ = Update(m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if m.viewport.Width != 40 || m.viewport.Height != 10-chromeHeight {
		t.Errorf("viewport = %dx%d, want 40x%d", m.viewport.Width, m.viewport.Height, 10-chromeHeight)
	}
	if strings.Contains(m.viewport.View(), long) {
		t.Error("line was not truncated to the new width")
	}

	m, _ = Update(m, tea.WindowSizeMsg{Width: 40, Height: 2})
	if m.viewport.Height != 1 {
		t.Errorf("viewport height = %d, want 1", m.viewport.Height)
	}
}

func TestScrollKeysReachViewport(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	m, _ := newTestModel(t, strings.Join(lines, "\n"), nil)
	if m.viewport.YOffset != 0 {
		t.Fatalf("initial YOffset = %d", m.viewport.YOffset)
	}

	m, _ = HandleKeyMsg(m, simulateKeyMsg("down"))
	if m.viewport.YOffset != 1 {
		t.Errorf("YOffset after down = %d, want 1", m.viewport.YOffset)
	}
	if m.ActiveView != ViewPreview {
		t.Errorf("ActiveView = %v, want ViewPreview", m.ActiveView)
	}
}
