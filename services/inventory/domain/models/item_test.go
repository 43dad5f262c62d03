package models

import (
	"testing"
	"time"
)

func TestNewItem(t *testing.T) {
	name := ItemName("Screws M4")

	t.Run("sets fields and timestamps", func(t *testing.T) {
		before := time.Now().UTC()
		item, err := NewItem(name, 12, "Cabinet 1, left top")
		after := time.Now().UTC()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.ID != 0 {
			t.Fatalf("expected unsaved item to have zero ID, got %d", item.ID)
		}
		if item.Name != name || item.Quantity != 12 || item.Location != "Cabinet 1, left top" {
			t.Fatalf("unexpected item: %+v", item)
		}
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
		if !item.UpdatedAt.Equal(item.CreatedAt) {
			t.Fatalf("expected UpdatedAt == CreatedAt on creation")
		}
	})

	t.Run("zero quantity allowed", func(t *testing.T) {
		if _, err := NewItem(name, 0, "Cabinet 1, left top"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		if _, err := NewItem(name, -1, "Cabinet 1, left top"); err == nil {
			t.Fatal("expected error for negative quantity")
		}
	})
}

func TestItem_TouchAndClone(t *testing.T) {
	item := &Item{ID: 1, Name: "Nuts", UpdatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	clone := item.Clone()
	clone.Quantity = 99
	if item.Quantity == 99 {
		t.Fatal("clone must not alias the original")
	}

	item.Touch()
	if !item.UpdatedAt.After(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("Touch must advance UpdatedAt")
	}
}
