// Package migration embute os scripts SQL aplicados pelo golang-migrate na subida da API.
package migration

import "embed"

//go:embed sql/*.sql
var Scripts embed.FS

const Dir = "sql"
