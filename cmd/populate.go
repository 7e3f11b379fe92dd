package main

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/postsync/internal/gitsync"
	"github.com/desertthunder/postsync/internal/shared"
	"github.com/desertthunder/postsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

const populatedMessage = "Populated the database with posts from the EBK website repository."

// PopulateDB syncs the content repository and imports every post in its content directory.
//
// The success line is printed only when every file was imported or skipped as a duplicate.
func (r *Runner) PopulateDB(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd, false)
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateID())

	if cmd.Bool("skip-sync") {
		logger.Info("skipping repository sync", "path", config.Repository.Path)
	} else {
		if err := config.ValidateSync(); err != nil {
			return err
		}

		result, err := gitsync.NewSyncer(config.Repository, r.git, logger).Sync(ctx)
		if err != nil {
			return fmt.Errorf("failed to sync repository: %w", err)
		}
		logger.Info("repository ready", "path", result.Path, "cloned", result.Cloned)
	}

	opts := tasks.ImporterOptsFromConfig(config.Importer, logger)
	if cmd.Bool("fail-fast") {
		opts.OnError = shared.OnErrorAbort
	}

	dir := filepath.Join(config.Repository.Path, config.Repository.ContentDir)

	var result *tasks.ImportResult
	err = shared.WithDatabase(config.Database, func(db *sql.DB) error {
		if err := shared.CheckSchema(db); err != nil {
			return err
		}

		var runErr error
		result, runErr = tasks.NewImporter(db, opts).Run(ctx, dir)
		return runErr
	})

	if result != nil {
		if werr := r.writeResult(result, cmd.Bool("json")); werr != nil {
			return werr
		}
	}

	if err != nil {
		return err
	}

	return r.writePlain("%s\n", r.palette.OK(populatedMessage))
}

func (r *Runner) writeResult(result *tasks.ImportResult, asJSON bool) error {
	if asJSON {
		return r.writeJSON(result, true)
	}

	if err := r.writePlain("%s\n", r.palette.Summary(result.Scanned, result.Imported, result.Duplicates, result.Failed)); err != nil {
		return err
	}

	for _, fe := range result.Errors {
		if err := r.writePlain("  %s %s: %v\n", r.palette.Err("✗"), fe.File, fe.Err); err != nil {
			return err
		}
	}
	return nil
}
