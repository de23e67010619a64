// Package migrations embeds the SQL schema migrations so the server and
// the test helpers apply them through the goose provider without relying
// on a filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
