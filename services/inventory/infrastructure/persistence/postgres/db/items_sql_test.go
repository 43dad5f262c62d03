package db

import (
	"context"
	"strings"
	"testing"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bolt", "bolt"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`C:\parts`, `C:\\parts`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListItems_RejectsUnknownSortColumn(t *testing.T) {
	q := New(nil)
	_, err := q.ListItems(context.Background(), ListItemsParams{SortColumn: "name; DROP TABLE items"})
	if err == nil || !strings.Contains(err.Error(), "invalid sort column") {
		t.Fatalf("expected invalid sort column error, got %v", err)
	}
}
