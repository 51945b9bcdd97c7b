package migrations

import "embed"

// Migrations holds the golang-migrate JSON command files for the mongo driver.
// Each file is an array of database commands run with RunCommand.
//
//go:embed *.json
var Migrations embed.FS
