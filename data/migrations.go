// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data ships the SQL migrations inside the API binary.
package data

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the schema and seed migrations rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}
