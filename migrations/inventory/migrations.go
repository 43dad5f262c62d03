// Package inventory embeds the goose migrations for the items and bookings tables.
package inventory

import "embed"

//go:embed *.sql
var FS embed.FS
