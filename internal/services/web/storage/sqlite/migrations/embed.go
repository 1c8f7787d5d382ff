// Package migrations embeds the web store schema.
package migrations

import "embed"

// FS holds the SQL migrations applied in filename order.
//
//go:embed *.sql
var FS embed.FS
