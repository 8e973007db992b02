// Package migrations embeds the SQL schema migrations of the drug catalog.
package migrations

import "embed"

// FS holds every *.up.sql / *.down.sql file, named for golang-migrate.
//
//go:embed *.sql
var FS embed.FS

//Personal.AI order the ending
