package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goliatone/go-slug"

	"github.com/desertthunder/postsync/internal/frontmatter"
	"github.com/desertthunder/postsync/internal/models"
	"github.com/desertthunder/postsync/internal/repositories"
	"github.com/desertthunder/postsync/internal/shared"
)

var ErrMissingURL = errors.New("post has no url")

// Outcome describes what happened to a single file.
type Outcome int

const (
	OutcomeImported Outcome = iota
	OutcomeDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeImported:
		return "imported"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// ImporterOpts configures field defaults and failure policies.
type ImporterOpts struct {
	Extensions       []string
	DefaultAuthor    string
	DefaultTitle     string
	DefaultDraft     string
	DefaultDate      string
	MissingURL       string
	OnError          string
	ReportDuplicates bool
	FrontMatter      frontmatter.Mode
	Logger           *log.Logger
}

// ImporterOptsFromConfig maps [shared.ImporterConfig] onto [ImporterOpts].
func ImporterOptsFromConfig(conf shared.ImporterConfig, logger *log.Logger) ImporterOpts {
	return ImporterOpts{
		Extensions:       conf.Extensions,
		DefaultAuthor:    conf.DefaultAuthor,
		DefaultTitle:     conf.DefaultTitle,
		DefaultDraft:     conf.DefaultDraft,
		DefaultDate:      conf.DefaultDate,
		MissingURL:       conf.MissingURL,
		OnError:          conf.OnError,
		ReportDuplicates: conf.ReportDuplicates,
		FrontMatter:      frontmatter.Mode(conf.FrontMatter),
		Logger:           logger,
	}
}

// FileError ties an import failure to its file.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.File, e.Err) }
func (e FileError) Unwrap() error { return e.Err }

// ImportResult summarizes a run.
type ImportResult struct {
	Dir        string      `json:"dir"`
	Scanned    int         `json:"scanned"`
	Imported   int         `json:"imported"`
	Duplicates int         `json:"duplicates"`
	Failed     int         `json:"failed"`
	Errors     []FileError `json:"-"`
}

// Importer loads markdown posts into the database.
type Importer struct {
	db     *sql.DB
	opts   ImporterOpts
	exts   map[string]bool
	logger *log.Logger
}

// NewImporter creates an Importer. Blank defaults fall back to the values of the
// embedded config.
func NewImporter(db *sql.DB, opts ImporterOpts) *Importer {
	defaults := shared.DefaultConfig().Importer
	if len(opts.Extensions) == 0 {
		opts.Extensions = defaults.Extensions
	}
	if opts.DefaultAuthor == "" {
		opts.DefaultAuthor = defaults.DefaultAuthor
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = defaults.DefaultTitle
	}
	if opts.DefaultDraft == "" {
		opts.DefaultDraft = defaults.DefaultDraft
	}
	if opts.DefaultDate == "" {
		opts.DefaultDate = defaults.DefaultDate
	}
	if opts.MissingURL == "" {
		opts.MissingURL = shared.MissingURLGenerate
	}
	if opts.OnError == "" {
		opts.OnError = shared.OnErrorContinue
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}

	return &Importer{db: db, opts: opts, exts: exts, logger: opts.Logger}
}

// Accepts reports whether a file name has one of the recognized extensions.
func (i *Importer) Accepts(name string) bool {
	return i.exts[strings.ToLower(filepath.Ext(name))]
}

// Run imports every recognized file directly inside dir.
//
// A missing or unreadable directory is fatal. File-level failures follow the OnError policy.
func (i *Importer) Run(ctx context.Context, dir string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content directory: %w", err)
	}

	result := &ImportResult{Dir: dir}

	for _, entry := range entries {
		if entry.IsDir() || !i.Accepts(entry.Name()) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Scanned++
		path := filepath.Join(dir, entry.Name())

		outcome, err := i.ImportFile(path)
		if err != nil {
			fe := FileError{File: entry.Name(), Err: err}
			result.Failed++
			result.Errors = append(result.Errors, fe)
			i.logger.Error("failed to import post", "file", entry.Name(), "error", err)

			if i.opts.OnError == shared.OnErrorAbort {
				return result, fmt.Errorf("%w: %w", shared.ErrImportFailed, fe)
			}
			continue
		}

		switch outcome {
		case OutcomeImported:
			result.Imported++
		case OutcomeDuplicate:
			result.Duplicates++
		}
	}

	i.logger.Info("import finished",
		"dir", dir,
		"scanned", result.Scanned,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"failed", result.Failed,
	)

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d files failed", shared.ErrImportFailed, result.Failed, result.Scanned)
	}
	return result, nil
}

// ImportFile parses one markdown file and stores it in its own transaction.
func (i *Importer) ImportFile(path string) (Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := frontmatter.Parse(string(data), i.opts.FrontMatter)
	if err != nil {
		return 0, err
	}

	name := filepath.Base(path)
	i.logger.Debug("parsed front matter", "file", name, "metadata", map[string]any(doc.Metadata))

	post, err := i.buildPost(name, doc)
	if err != nil {
		return 0, err
	}

	return i.store(post, doc.Metadata.List("categories"), doc.Metadata.List("tags"))
}

// buildPost applies field defaults and the missing-url policy.
func (i *Importer) buildPost(name string, doc *frontmatter.Document) (*models.Post, error) {
	meta := doc.Metadata

	url, ok := meta.String("url")
	if !ok || strings.TrimSpace(url) == "" {
		generated, err := i.missingURL(name)
		if err != nil {
			return nil, err
		}
		url = generated
	}

	return models.NewPost(
		url,
		meta.StringOr("title", i.opts.DefaultTitle),
		meta.StringOr("author", i.opts.DefaultAuthor),
		meta.StringOr("draft", i.opts.DefaultDraft),
		meta.StringOr("date", i.opts.DefaultDate),
		doc.Body,
	), nil
}

func (i *Importer) missingURL(name string) (string, error) {
	if i.opts.MissingURL != shared.MissingURLGenerate {
		return "", ErrMissingURL
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	s, err := slug.Normalize(base)
	if err != nil {
		return "", fmt.Errorf("%w: cannot derive one from %q: %v", ErrMissingURL, name, err)
	}
	if s == "" {
		return "", fmt.Errorf("%w: cannot derive one from %q", ErrMissingURL, name)
	}

	url := "/" + s
	i.logger.Warn("front matter has no url, generated one", "file", name, "url", url)
	return url, nil
}

// store writes the post and its taxonomy, or nothing at all.
func (i *Importer) store(post *models.Post, categories, tags []string) (Outcome, error) {
	tx, err := i.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	posts := repositories.NewPostRepository(tx)

	exists, err := posts.ExistsByURL(post.URL())
	if err != nil {
		return 0, err
	}
	if exists {
		if i.opts.ReportDuplicates {
			i.logger.Warn("post already imported, skipping", "url", post.URL())
		} else {
			i.logger.Debug("post already imported, skipping", "url", post.URL())
		}
		return OutcomeDuplicate, nil
	}

	if err := posts.Create(post); err != nil {
		return 0, err
	}

	if err := repositories.NewCategoryRepository(tx).Attach(post.ID(), categories); err != nil {
		return 0, err
	}

	if err := repositories.NewTagRepository(tx).Attach(post.ID(), tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit post %s: %w", post.URL(), err)
	}

	i.logger.Info("imported post", "url", post.URL(), "title", post.Title(), "categories", len(categories), "tags", len(tags))
	return OutcomeImported, nil
}
