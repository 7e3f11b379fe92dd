package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/postsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// InitDB drops and recreates every content table.
func (r *Runner) InitDB(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd, true)
	if err != nil {
		return err
	}

	if err := config.Database.Validate(); err != nil {
		return fmt.Errorf("%w: database: %v", shared.ErrInvalidConfig, err)
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	err = shared.WithDatabase(config.Database, func(db *sql.DB) error {
		return shared.InitSchema(db)
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	r.logger.Infof("schema created for database: %v", config.Database.Path)
	return r.writePlain("%s\n", r.palette.OK("Initialized the database."))
}
