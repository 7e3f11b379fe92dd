package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/postsync/internal/formatter"
	"github.com/desertthunder/postsync/internal/models"
	"github.com/desertthunder/postsync/internal/repositories"
	"github.com/desertthunder/postsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// withContentDB opens the configured database for reading and checks the schema exists.
func (r *Runner) withContentDB(cmd *cli.Command, fn func(db *sql.DB) error) error {
	config, err := r.resolveConfig(cmd, false)
	if err != nil {
		return err
	}

	return shared.WithDatabase(config.Database, func(db *sql.DB) error {
		if err := shared.CheckSchema(db); err != nil {
			return err
		}
		return fn(db)
	})
}

// loadDetail attaches categories and tags to a post.
func loadDetail(db *sql.DB, post *models.Post) (models.PostDetail, error) {
	categories, err := repositories.NewCategoryRepository(db).ForPost(post.ID())
	if err != nil {
		return models.PostDetail{}, err
	}

	tags, err := repositories.NewTagRepository(db).ForPost(post.ID())
	if err != nil {
		return models.PostDetail{}, err
	}

	return models.NewPostDetail(post, categories, tags), nil
}

// ListPosts prints imported posts, optionally filtered by category or tag.
func (r *Runner) ListPosts(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{"drafts": cmd.Bool("drafts")}
	if category := strings.TrimSpace(cmd.String("category")); category != "" {
		criteria["category"] = category
	}
	if tag := strings.TrimSpace(cmd.String("tag")); tag != "" {
		criteria["tag"] = tag
	}

	var details []models.PostDetail
	err := r.withContentDB(cmd, func(db *sql.DB) error {
		posts, err := repositories.NewPostRepository(db).List(criteria)
		if err != nil {
			return err
		}

		details = make([]models.PostDetail, 0, len(posts))
		for _, post := range posts {
			detail, err := loadDetail(db, post)
			if err != nil {
				return err
			}
			detail.Content = ""
			details = append(details, detail)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("listed posts", "count", len(details), "criteria", criteria)

	if cmd.Bool("json") {
		return r.writeJSON(details, true)
	}

	data, err := formatter.ExportToText(details)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// ShowPost prints one post looked up by its url.
func (r *Runner) ShowPost(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.StringArg("url"))
	if url == "" {
		return fmt.Errorf("%w: post url is required", shared.ErrMissingArgument)
	}

	var detail models.PostDetail
	err := r.withContentDB(cmd, func(db *sql.DB) error {
		post, err := repositories.NewPostRepository(db).GetByURL(url)
		if err != nil {
			return err
		}

		detail, err = loadDetail(db, post)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to load post %s: %w", url, err)
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteHTMLExport(detail, path); err != nil {
			return err
		}
		r.logger.Info("post exported", "url", url, "path", path)
		return r.writePlain("%s %s\n", r.palette.OK("✓"), path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, true)
	}

	var data []byte
	if cmd.Bool("html") {
		data, err = formatter.ExportToHTML(detail)
	} else {
		data, err = formatter.ExportToMarkdown(detail)
	}
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// ListTerms prints every category and tag with the number of posts using it.
func (r *Runner) ListTerms(ctx context.Context, cmd *cli.Command) error {
	var categories, tags []models.Term
	err := r.withContentDB(cmd, func(db *sql.DB) error {
		var err error
		if categories, err = repositories.NewCategoryRepository(db).List(); err != nil {
			return err
		}
		tags, err = repositories.NewTagRepository(db).List()
		return err
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string][]models.Term{
			"categories": nonNil(categories),
			"tags":       nonNil(tags),
		}, true)
	}

	if err := r.writeBytes(formatter.ExportTerms("Categories", categories)); err != nil {
		return err
	}
	return r.writeBytes(formatter.ExportTerms("Tags", tags))
}

func nonNil(terms []models.Term) []models.Term {
	if terms == nil {
		return []models.Term{}
	}
	return terms
}
