package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/postsync/internal/models"
	"github.com/desertthunder/postsync/internal/shared"
)

const postColumns = "id, author, title, draft, url, created_at, commited, content"

// PostRepository persists [models.Post] rows.
//
// Posts are insert-only; there is no update or delete path.
type PostRepository struct {
	db DBTX
}

// NewPostRepository creates a new PostRepository with the given database connection or transaction
func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and sets its generated ID
func (r *PostRepository) Create(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO posts (author, title, draft, url, created_at, commited, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		post.Author(),
		post.Title(),
		post.Draft(),
		post.URL(),
		post.CreatedAt(),
		post.Committed(),
		post.Content(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get post id: %w", err)
	}
	post.SetID(id)

	return nil
}

// Get retrieves a post by ID
func (r *PostRepository) Get(id int64) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = ?"
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByURL retrieves a post by its url
func (r *PostRepository) GetByURL(url string) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE url = ?"
	return r.scanOne(r.db.QueryRow(query, url))
}

// ExistsByURL reports whether a post with the given url is stored
func (r *PostRepository) ExistsByURL(url string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM posts WHERE url = ?)", url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up post: %w", err)
	}
	return exists, nil
}

// List retrieves posts matching the given criteria, newest first.
//
// Supported criteria: "category" (string), "tag" (string), "drafts" (bool, false hides drafts).
func (r *PostRepository) List(criteria map[string]any) ([]*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE 1 = 1"
	args := []any{}

	if category, ok := criteria["category"].(string); ok && category != "" {
		query += " AND id IN (SELECT post_id FROM post_categories WHERE category_id = ?)"
		args = append(args, category)
	}

	if tag, ok := criteria["tag"].(string); ok && tag != "" {
		query += " AND id IN (SELECT post_id FROM post_tags WHERE tag_id = ?)"
		args = append(args, tag)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	drafts, filterDrafts := criteria["drafts"].(bool)

	var posts []*models.Post
	for rows.Next() {
		post, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		if filterDrafts && !drafts && post.IsDraft() {
			continue
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		id        int64
		author    string
		title     string
		draft     string
		url       string
		createdAt string
		committed bool
		content   string
	)

	if err := row.Scan(&id, &author, &title, &draft, &url, &createdAt, &committed, &content); err != nil {
		return nil, err
	}

	post := models.NewPost(url, title, author, draft, createdAt, content)
	post.SetID(id)
	post.SetCommitted(committed)
	return post, nil
}

// scanOne scans a single [sql.Row] into a [models.Post]
func (r *PostRepository) scanOne(row *sql.Row) (*models.Post, error) {
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return post, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Post]
func (r *PostRepository) scanRow(rows *sql.Rows) (*models.Post, error) {
	post, err := scanPost(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return post, nil
}
