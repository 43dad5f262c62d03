package models

import "testing"

func TestParseBookingType(t *testing.T) {
	tests := []struct {
		in      string
		want    BookingType
		wantErr bool
	}{
		{"in", BookingIn, false},
		{"out", BookingOut, false},
		{"OUT", BookingOut, false},
		{" in ", BookingIn, false},
		{"", "", true},
		{"transfer", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBookingType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBookingType(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseBookingType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	tests := []struct {
		name     string
		itemID   int64
		quantity int
		typ      BookingType
		wantErr  bool
	}{
		{"valid in", 1, 5, BookingIn, false},
		{"valid out", 1, 1, BookingOut, false},
		{"zero quantity", 1, 0, BookingIn, true},
		{"negative quantity", 1, -3, BookingOut, true},
		{"missing item", 0, 1, BookingIn, true},
		{"unknown type", 1, 1, BookingType("move"), true},
		{"uppercase type not normalized", 1, 1, BookingType("IN"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBooking(tt.itemID, tt.quantity, tt.typ, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBooking error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && b.CreatedAt.IsZero() {
				t.Fatal("expected CreatedAt to be set")
			}
		})
	}
}

func TestBooking_Delta(t *testing.T) {
	in := &Booking{Quantity: 4, Type: BookingIn}
	out := &Booking{Quantity: 4, Type: BookingOut}
	if in.Delta() != 4 {
		t.Errorf("in delta: got %d", in.Delta())
	}
	if out.Delta() != -4 {
		t.Errorf("out delta: got %d", out.Delta())
	}
}
