// Package migrations embeds the SQL migration files into the store binary,
// so the schema can be applied without the files present on disk.
package migrations

import (
	"embed"

	"github.com/oakmere/weathervane/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // Files are at root of embedded FS
}
