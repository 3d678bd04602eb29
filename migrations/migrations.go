// Package migrations embeds the SQL schema migrations so the server and the
// tests can apply them without a checkout-relative file path.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
