package repositories

import "testing"

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{"", SortByName, false},
		{"id", SortByID, false},
		{"name", SortByName, false},
		{"quantity", SortByQuantity, false},
		{"location", SortByLocation, false},
		{"createdAt", SortByCreatedAt, false},
		{"updatedAt", SortByUpdatedAt, false},
		{"created_at", "", true},
		{"name; DROP TABLE items", "", true},
		{"Name", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortField(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortField(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseSortField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortAsc, false},
		{"asc", SortAsc, false},
		{"DESC", SortDesc, false},
		{"up", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseSortOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
