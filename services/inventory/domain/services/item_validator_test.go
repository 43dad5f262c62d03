package services

import (
	"strings"
	"testing"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ItemName
		wantErr bool
	}{
		{"valid name", "Valid Item Name", false},
		{"valid name with special chars", "Item-Name_123!@#", false},
		{"valid double space inside", "M4  screws", false},
		{"leading whitespace", " Name", true},
		{"trailing whitespace", "Name ", true},
		{"only whitespace", "   ", true},
		{"tab character (control)", "Name\tName", true},
		{"newline character (control)", "Name\nName", true},
		{"null byte (control)", "Name\x00", true},
		{"DEL character", "Name\x7F", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", "Cabinet 1, left top", false},
		{"free text", "Workbench drawer", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", 256), true},
		{"control char", "Cabinet\n1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLocation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLocation(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateItem(t *testing.T) {
	valid := func() *models.Item {
		return &models.Item{Name: "Bolts", Quantity: 3, Location: "Cabinet 2, right middle"}
	}

	t.Run("nil item returns error", func(t *testing.T) {
		if err := ValidateItem(nil); err == nil {
			t.Fatal("expected error for nil item")
		}
	})

	t.Run("valid item returns nil", func(t *testing.T) {
		if err := ValidateItem(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		item := valid()
		item.Quantity = -1
		if err := ValidateItem(item); err == nil {
			t.Fatal("expected error for negative quantity")
		}
	})

	t.Run("missing location", func(t *testing.T) {
		item := valid()
		item.Location = ""
		if err := ValidateItem(item); err == nil {
			t.Fatal("expected error for missing location")
		}
	})

	t.Run("invalid name propagates error", func(t *testing.T) {
		item := valid()
		item.Name = " leading space"
		if err := ValidateItem(item); err == nil {
			t.Fatal("expected error for invalid name")
		}
	})
}
