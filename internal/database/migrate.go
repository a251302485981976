package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies the embedded schema files in lexical order
// (001_events.sql, 002_bookings.sql, ...). Statements are written to be
// idempotent so Migrate is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		stmt, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply schema %s: %w", name, err)
		}
	}
	return nil
}
