package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/postsync/internal/models"
	"github.com/desertthunder/postsync/internal/shared"
)

// TermRepository persists categories or tags and their links to posts.
//
// Both taxonomies share one shape: a name-keyed table plus a (post_id, name) junction table.
type TermRepository struct {
	db        DBTX
	table     string
	linkTable string
	linkKey   string
}

// NewCategoryRepository creates a TermRepository over categories and post_categories
func NewCategoryRepository(db DBTX) *TermRepository {
	return &TermRepository{db: db, table: "categories", linkTable: "post_categories", linkKey: "category_id"}
}

// NewTagRepository creates a TermRepository over tags and post_tags
func NewTagRepository(db DBTX) *TermRepository {
	return &TermRepository{db: db, table: "tags", linkTable: "post_tags", linkKey: "tag_id"}
}

// Ensure inserts the term if it is not already present
func (r *TermRepository) Ensure(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name is required", shared.ErrInvalidInput, r.table)
	}

	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (id) VALUES (?)", r.table)
	if _, err := r.db.Exec(query, name); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

// Link associates a post with a term. Both rows must already exist.
func (r *TermRepository) Link(postID int64, name string) error {
	query := fmt.Sprintf("INSERT OR IGNORE INTO %s (post_id, %s) VALUES (?, ?)", r.linkTable, r.linkKey)
	if _, err := r.db.Exec(query, postID, name); err != nil {
		return fmt.Errorf("failed to link post %d in %s: %w", postID, r.linkTable, err)
	}
	return nil
}

// Attach ensures each term exists, then links it to the post, in that order.
func (r *TermRepository) Attach(postID int64, names []string) error {
	for _, name := range names {
		if err := r.Ensure(name); err != nil {
			return err
		}
		if err := r.Link(postID, name); err != nil {
			return err
		}
	}
	return nil
}

// ForPost returns the term names linked to a post, sorted by name
func (r *TermRepository) ForPost(postID int64) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE post_id = ? ORDER BY %s", r.linkKey, r.linkTable, r.linkKey)

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.linkTable, err)
	}

	return scanStrings(rows)
}

// List returns every term with the number of posts linked to it
func (r *TermRepository) List() ([]models.Term, error) {
	query := fmt.Sprintf(`
		SELECT t.id, COUNT(l.post_id)
		FROM %s t
		LEFT JOIN %s l ON l.%s = t.id
		GROUP BY t.id
		ORDER BY t.id
	`, r.table, r.linkTable, r.linkKey)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var term models.Term
		if err := rows.Scan(&term.Name, &term.Posts); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.table, err)
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return terms, nil
}
