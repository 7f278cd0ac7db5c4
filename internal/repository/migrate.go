package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// SchemaStatements splits the embedded schema into executable statements.
func SchemaStatements() []string {
	var out []string
	for _, stmt := range strings.Split(schemaSQL, ";") {
		var lines []string
		for _, line := range strings.Split(stmt, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt = strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Migrate creates the tables if they do not exist. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	statements := SchemaStatements()
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d/%d: %w", i+1, len(statements), err)
		}
		logger.Debug("Schema statement applied", zap.Int("index", i+1))
	}
	return nil
}
