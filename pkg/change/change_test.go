package change_test

import (
	"errors"
	"testing"

	"linefile/pkg/change"
)

func TestChangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		change  change.Change
		wantErr error
	}{
		{name: "insert", change: change.NewInsert(0, "x")},
		{name: "insert empty line", change: change.NewInsert(3, "")},
		{name: "delete", change: change.NewDelete(1)},
		{name: "replace", change: change.NewReplace(0, "z")},
		{name: "carriage return is content", change: change.NewReplace(0, "a\r")},
		{name: "insert with terminator", change: change.NewInsert(0, "a\nb"), wantErr: change.ErrInvalidContent},
		{name: "replace with terminator", change: change.NewReplace(0, "\n"), wantErr: change.ErrInvalidContent},
		{name: "zero kind", change: change.Change{At: 0}, wantErr: change.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChangesetValidateReportsIndex(t *testing.T) {
	cs := change.Changeset{
		change.NewDelete(0),
		change.NewInsert(1, "bad\nline"),
	}
	err := cs.Validate()
	if !errors.Is(err, change.ErrInvalidContent) {
		t.Fatalf("Validate() error = %v, want ErrInvalidContent", err)
	}
	if got := err.Error(); got[:8] != "change 1" {
		t.Errorf("Validate() error = %q, want prefix %q", got, "change 1")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    change.Kind
		wantErr bool
	}{
		{in: "insert", want: change.Insert},
		{in: "DELETE", want: change.Delete},
		{in: " Replace ", want: change.Replace},
		{in: "move", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := change.ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestChangeString(t *testing.T) {
	tests := []struct {
		change change.Change
		want   string
	}{
		{change.NewInsert(2, "X"), `Insert(2, "X")`},
		{change.NewDelete(1), "Delete(1)"},
		{change.NewReplace(0, "z"), `Replace(0, "z")`},
	}
	for _, tt := range tests {
		if got := tt.change.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestChangesetCount(t *testing.T) {
	cs := change.Changeset{
		change.NewInsert(0, "a"),
		change.NewInsert(0, "b"),
		change.NewDelete(1),
	}
	if got := cs.Count(change.Insert); got != 2 {
		t.Errorf("Count(Insert) = %d, want 2", got)
	}
	if got := cs.Count(change.Replace); got != 0 {
		t.Errorf("Count(Replace) = %d, want 0", got)
	}
}
