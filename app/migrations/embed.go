// Package migrations embeds the schema migrations for each supported database.
package migrations

import "embed"

//go:embed mysql/*.sql postgres/*.sql
var FS embed.FS
