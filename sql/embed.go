// Package sql embeds the goose schema migrations.
package sql

import "embed"

//go:embed *.sql
var FS embed.FS
