// Package migrations embeds the goose SQL migrations for the record store,
// one directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Dir returns the migration directory for a goose dialect name.
func Dir(gooseDialect string) string {
	if gooseDialect == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
