// Package migrations embeds the SQL schema files so the server can
// self-migrate on startup without a copy of the migrations directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
