// Package migrations содержит SQL миграции схемы, встроенные в бинарник
package migrations

import "embed"

// FS содержит goose миграции
//
//go:embed *.sql
var FS embed.FS
