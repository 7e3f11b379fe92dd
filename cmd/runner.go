package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/postsync/internal/gitsync"
	"github.com/desertthunder/postsync/internal/shared"
	"github.com/desertthunder/postsync/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	git        gitsync.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Git        gitsync.Client
	Logger     *log.Logger
	Output     io.Writer
	Palette    *ui.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Git == nil {
		opts.Git = gitsync.GoGitClient{}
	}
	if opts.Palette == nil {
		opts.Palette = ui.Default
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		git:        opts.Git,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    opts.Palette,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initDBCommand, populateDBCommand, postsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveConfig returns the configuration a command should run with.
//
// When the file named by --config exists it is loaded and environment overrides are applied
// on top. A missing file is created from the template when create is set, is an error when
// the flag was given explicitly, and otherwise falls back to the config the runner was built with.
func (r *Runner) resolveConfig(cmd *cli.Command, create bool) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}

	if path == "" {
		return r.config, nil
	}

	if _, err := os.Stat(path); err != nil {
		switch {
		case create:
			r.logger.Info("config file not found, creating from template", "path", path)
			if err := shared.CreateConfigFile(path); err != nil {
				return nil, err
			}
			r.logger.Info("config file created", "path", path)
		case cmd.IsSet("config"):
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		default:
			return r.config, nil
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()

	if err := shared.ApplyLogLevel(r.logger, config.Logging.Level); err != nil {
		r.logger.Warn("ignoring invalid log level", "level", config.Logging.Level, "error", err)
	}

	r.config = config
	return config, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
