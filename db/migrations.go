package db

import "embed"

// Migrations holds the schema applied at startup when no override
// directory is configured.
//
//go:embed migrations/*.sql
var Migrations embed.FS
