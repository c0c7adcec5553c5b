// Package migrations embeds the SQL schema migrations applied on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
