package migrations

import "embed"

// FS embeds the SQL migrations so the server binary is self-contained.
//
//go:embed *.sql
var FS embed.FS
