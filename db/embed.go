package db

import "embed"

// Migrations holds the SQL schema files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
