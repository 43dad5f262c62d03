package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shelf is the vertical position inside a cabinet.
type Shelf string

const (
	ShelfTop    Shelf = "top"
	ShelfMiddle Shelf = "middle"
	ShelfBottom Shelf = "bottom"
)

// Side is the horizontal half of a cabinet.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

const (
	MinCabinet = 1
	MaxCabinet = 9
)

var (
	shelves = []Shelf{ShelfTop, ShelfMiddle, ShelfBottom}
	sides   = []Side{SideLeft, SideRight}

	locationPattern = regexp.MustCompile(`(?i)^\s*cabinet\s+(\d+)\s*,\s*(left|right)\s+(top|middle|bottom)\s*$`)
)

// Location is a storage coordinate: cabinet 1–9, side and shelf.
type Location struct {
	Cabinet int
	Side    Side
	Shelf   Shelf
}

// String renders the canonical form, e.g. "Cabinet 3, left top".
func (l Location) String() string {
	return fmt.Sprintf("Cabinet %d, %s %s", l.Cabinet, l.Side, l.Shelf)
}

// ParseLocation parses the canonical form case-insensitively.
func ParseLocation(s string) (Location, error) {
	m := locationPattern.FindStringSubmatch(s)
	if m == nil {
		return Location{}, fmt.Errorf("location %q is not of the form \"Cabinet N, <left|right> <top|middle|bottom>\"", s)
	}
	cabinet, err := strconv.Atoi(m[1])
	if err != nil || cabinet < MinCabinet || cabinet > MaxCabinet {
		return Location{}, fmt.Errorf("cabinet must be between %d and %d, got %s", MinCabinet, MaxCabinet, m[1])
	}
	return Location{
		Cabinet: cabinet,
		Side:    Side(strings.ToLower(m[2])),
		Shelf:   Shelf(strings.ToLower(m[3])),
	}, nil
}

// AllLocations lists every storage coordinate ordered by cabinet, side, then shelf.
func AllLocations() []Location {
	out := make([]Location, 0, (MaxCabinet-MinCabinet+1)*len(sides)*len(shelves))
	for c := MinCabinet; c <= MaxCabinet; c++ {
		for _, side := range sides {
			for _, shelf := range shelves {
				out = append(out, Location{Cabinet: c, Side: side, Shelf: shelf})
			}
		}
	}
	return out
}
