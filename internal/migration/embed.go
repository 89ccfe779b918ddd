package migration

import "embed"

const migrationsDir = "migrations"

// The billing schema ships inside the binary; RunMigrations applies
// these in lexical order on boot.
//
//go:embed migrations/*.up.sql
var embeddedMigrations embed.FS
