// Package db carries the schema migrations compiled into the binaries.
package db

import "embed"

// Migrations holds migrations/*.sql in golang-migrate naming
// (NNNNNN_name.up.sql / .down.sql).
//
//go:embed migrations/*.sql
var Migrations embed.FS
