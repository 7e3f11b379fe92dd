package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed sql/schema.sql
var schemaFiles embed.FS

// Tables lists the tables created by the schema in dependency order (parents first).
var Tables = []string{"posts", "categories", "tags", "post_categories", "post_tags"}

// loadSchema reads the embedded schema script and splits it into executable statements.
func loadSchema() ([]string, error) {
	content, err := schemaFiles.ReadFile("sql/schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var statements []string
	for _, stmt := range strings.Split(string(content), ";") {
		stmt = strings.TrimSpace(removeComments(stmt))
		if stmt == "" {
			continue
		}
		statements = append(statements, stmt)
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("schema file contains no statements")
	}

	return statements, nil
}

// InitSchema drops and recreates every table inside one transaction.
//
// Existing posts, categories, tags and their links are removed.
func InitSchema(db *sql.DB) error {
	statements, err := loadSchema()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// CheckSchema reports [ErrSchemaMissing] when any of the expected tables is absent.
func CheckSchema(db *sql.DB) error {
	for _, table := range Tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: table %s does not exist (run init-db)", ErrSchemaMissing, table)
		}
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
	}
	return nil
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
