// Package migrations holds the versioned SQL schema, embedded into the binaries
package migrations

import "embed"

// FS contains the NNNNNN_name.up.sql / .down.sql pairs
//
//go:embed *.sql
var FS embed.FS
