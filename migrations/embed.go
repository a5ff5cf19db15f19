// Package migrations embeds the Postgres schema for the feeding journal.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
