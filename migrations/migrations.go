// Package migrations embeds the SQL schema so binaries never depend on a
// migrations directory being present next to them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
