package repositories

import (
	"fmt"
	"strings"
)

// SortField is an allow-listed item column for listing order.
type SortField string

const (
	SortByID        SortField = "id"
	SortByName      SortField = "name"
	SortByQuantity  SortField = "quantity"
	SortByLocation  SortField = "location"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"

	DefaultSortField = SortByName
)

var sortFields = map[SortField]bool{
	SortByID:        true,
	SortByName:      true,
	SortByQuantity:  true,
	SortByLocation:  true,
	SortByCreatedAt: true,
	SortByUpdatedAt: true,
}

// ParseSortField maps a query value to a SortField. Empty selects the default.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return DefaultSortField, nil
	}
	f := SortField(s)
	if !sortFields[f] {
		return "", fmt.Errorf("unsupported sort field %q", s)
	}
	return f, nil
}

// SortOrder is the listing direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc or desc in any case. Empty selects asc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case "":
		return SortAsc, nil
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("unsupported sort order %q", s)
	}
}

// ItemQuery filters and orders an item listing. Zero values mean "no filter".
type ItemQuery struct {
	Search    string // case-insensitive substring of name or location
	Location  string // exact location match
	SortBy    SortField
	SortOrder SortOrder
}
