package rewrite

import (
	"errors"
	"reflect"
	"testing"

	"linefile/internal/linebuf"
)

func TestCursorRewriter(t *testing.T) {
	buf := linebuf.FromLines([]string{"l0", "l1", "l2", "l3", "l4"})
	rw := NewCursorRewriter(buf)

	if err := rw.CopyLinesUntil(1); err != nil {
		t.Fatalf("CopyLinesUntil(1) error = %v", err)
	}
	rw.InsertLines([]string{"ins"})
	if err := rw.ReplaceLines(2, 3, []string{"r"}); err != nil {
		t.Fatalf("ReplaceLines(2, 3) error = %v", err)
	}
	rw.CopyRemainingLines()

	want := []string{"l0", "ins", "l1", "r", "l4"}
	if got := rw.Buffer().Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Buffer() = %q, want %q", got, want)
	}
	if got := buf.Lines(); !reflect.DeepEqual(got, []string{"l0", "l1", "l2", "l3", "l4"}) {
		t.Errorf("original buffer changed: %q", got)
	}
}

func TestCursorRewriterDeleteRange(t *testing.T) {
	rw := NewCursorRewriter(linebuf.FromLines([]string{"a", "b", "c"}))
	if err := rw.ReplaceLines(0, 1, nil); err != nil {
		t.Fatalf("ReplaceLines() error = %v", err)
	}
	rw.CopyRemainingLines()
	if got := rw.Buffer().Lines(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Buffer() = %q, want [c]", got)
	}
}

func TestCursorRewriterErrors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(rw *CursorRewriter) error
		wantErr error
	}{
		{
			name:    "copy past end",
			run:     func(rw *CursorRewriter) error { return rw.CopyLinesUntil(3) },
			wantErr: linebuf.ErrLineNotFound,
		},
		{
			name:    "replace past end",
			run:     func(rw *CursorRewriter) error { return rw.ReplaceLines(1, 2, nil) },
			wantErr: linebuf.ErrLineNotFound,
		},
		{
			name: "move backwards",
			run: func(rw *CursorRewriter) error {
				if err := rw.CopyLinesUntil(2); err != nil {
					return err
				}
				return rw.CopyLinesUntil(1)
			},
		},
		{
			name: "inverted range",
			run:  func(rw *CursorRewriter) error { return rw.ReplaceLines(1, 0, nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := NewCursorRewriter(linebuf.FromLines([]string{"a", "b"}))
			err := tt.run(rw)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
