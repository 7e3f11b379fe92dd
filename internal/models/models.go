// package models defines the data model for the postsync content store
package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Post is a blog post imported from a markdown file.
//
// Posts are insert-only: the importer creates them once per url and never updates them.
type Post struct {
	id        int64
	author    string
	title     string
	draft     string
	url       string
	createdAt string
	committed bool
	content   string
}

// NewPost creates an unsaved [Post]. The id is assigned on insert.
func NewPost(url, title, author, draft, createdAt, content string) *Post {
	return &Post{
		url:       url,
		title:     title,
		author:    author,
		draft:     draft,
		createdAt: createdAt,
		content:   content,
		committed: true,
	}
}

func (p *Post) ID() int64         { return p.id }
func (p *Post) Author() string    { return p.author }
func (p *Post) Title() string     { return p.title }
func (p *Post) Draft() string     { return p.draft }
func (p *Post) URL() string       { return p.url }
func (p *Post) CreatedAt() string { return p.createdAt }
func (p *Post) Committed() bool   { return p.committed }
func (p *Post) Content() string   { return p.content }

func (p *Post) SetID(id int64)          { p.id = id }
func (p *Post) SetCommitted(flag bool)  { p.committed = flag }
func (p *Post) SetContent(body string)  { p.content = body }
func (p *Post) SetCreatedAt(d string)   { p.createdAt = d }
func (p *Post) SetDraft(draft string)   { p.draft = draft }
func (p *Post) SetTitle(title string)   { p.title = title }
func (p *Post) SetAuthor(author string) { p.author = author }

// IsDraft interprets the stored draft text. The stored value itself is never rewritten.
func (p *Post) IsDraft() bool {
	switch strings.ToLower(strings.TrimSpace(p.draft)) {
	case "true", "yes", "on", "1", "y":
		return true
	default:
		return false
	}
}

// Validate checks the url, the only field the posts table keys on.
//
// Other fields are stored as given, blank values included.
func (p *Post) Validate() error {
	return validation.Errors{
		"url": validation.Validate(p.url, validation.Required),
	}.Filter()
}

// Term is a category or tag name with its post count.
type Term struct {
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

// PostDetail is the read model for a post with its taxonomy.
type PostDetail struct {
	ID         int64    `json:"id"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	Draft      string   `json:"draft"`
	CreatedAt  string   `json:"created_at"`
	Committed  bool     `json:"committed"`
	Content    string   `json:"content,omitempty"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// NewPostDetail copies a [Post] into its read model.
func NewPostDetail(p *Post, categories, tags []string) PostDetail {
	if categories == nil {
		categories = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return PostDetail{
		ID:         p.ID(),
		URL:        p.URL(),
		Title:      p.Title(),
		Author:     p.Author(),
		Draft:      p.Draft(),
		CreatedAt:  p.CreatedAt(),
		Committed:  p.Committed(),
		Content:    p.Content(),
		Categories: categories,
		Tags:       tags,
	}
}
