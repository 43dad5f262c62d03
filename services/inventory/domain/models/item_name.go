package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxItemNameLength is counted in characters, not bytes.
const MaxItemNameLength = 255

// ErrEmptyItemName is returned for names that are empty after trimming.
var ErrEmptyItemName = errors.New("item name is required")

// ItemName is the trimmed, non-empty display name of an item.
type ItemName string

// NewItemName trims surrounding whitespace from s and checks its length.
func NewItemName(s string) (ItemName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyItemName
	}
	if n := utf8.RuneCountInString(s); n > MaxItemNameLength {
		return "", fmt.Errorf("item name has %d characters, at most %d allowed", n, MaxItemNameLength)
	}
	return ItemName(s), nil
}

func (n ItemName) String() string {
	return string(n)
}

// ContainsFold reports whether term occurs in the name, ignoring case.
func (n ItemName) ContainsFold(term string) bool {
	return strings.Contains(strings.ToLower(string(n)), strings.ToLower(term))
}
