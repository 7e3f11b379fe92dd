// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both [sql.DB] and [sql.Tx].
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Counts holds row totals for the content tables.
type Counts struct {
	Posts          int `json:"posts"`
	Categories     int `json:"categories"`
	Tags           int `json:"tags"`
	PostCategories int `json:"post_categories"`
	PostTags       int `json:"post_tags"`
}

// CountRows returns the number of rows in every content table.
func CountRows(db DBTX) (Counts, error) {
	var c Counts
	targets := []struct {
		table string
		dest  *int
	}{
		{"posts", &c.Posts},
		{"categories", &c.Categories},
		{"tags", &c.Tags},
		{"post_categories", &c.PostCategories},
		{"post_tags", &c.PostTags},
	}

	for _, target := range targets {
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", target.table)).Scan(target.dest); err != nil {
			return Counts{}, fmt.Errorf("failed to count %s: %w", target.table, err)
		}
	}

	return c, nil
}

// scanStrings collects a single string column from rows.
func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return values, nil
}
