// Package gitsync keeps a local working copy of the content repository current.
//
// [Syncer.Sync] clones the remote shallowly when the local path is missing and then always
// pulls origin. Failures are returned as-is; there are no retries and a half-written clone
// is left on disk for the operator to inspect.
package gitsync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/postsync/internal/shared"
)

var ErrNotRepository = errors.New("path exists but is not a git repository")

// Options describes the remote to clone or pull from.
type Options struct {
	URL    string
	Branch string
	Token  string
	Depth  int
}

// Client performs the git operations. [GoGitClient] is the production implementation.
type Client interface {
	Clone(ctx context.Context, path string, opts Options) error
	Pull(ctx context.Context, path string, opts Options) error
}

// Result reports what a sync did.
type Result struct {
	Path   string
	Cloned bool
}

// Syncer clones-if-absent and pulls a content repository.
type Syncer struct {
	client Client
	path   string
	opts   Options
	logger *log.Logger
}

// NewSyncer builds a Syncer from repository settings. A nil client uses [GoGitClient]; a nil
// logger uses [shared.NewLogger].
func NewSyncer(conf shared.RepositoryConfig, client Client, logger *log.Logger) *Syncer {
	if client == nil {
		client = GoGitClient{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Syncer{
		client: client,
		path:   conf.Path,
		opts: Options{
			URL:    conf.URL,
			Branch: conf.Branch,
			Token:  conf.Token,
			Depth:  conf.Depth,
		},
		logger: logger,
	}
}

// Sync makes sure the local path holds a working copy at the latest origin state.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	result := &Result{Path: s.path}

	info, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("cloning content repository", "url", s.opts.URL, "path", s.path, "depth", s.opts.Depth)
		if err := s.client.Clone(ctx, s.path, s.opts); err != nil {
			return nil, fmt.Errorf("failed to clone %s: %w", s.opts.URL, err)
		}
		result.Cloned = true
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", s.path, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is a file", ErrNotRepository, s.path)
	}

	s.logger.Info("pulling origin", "path", s.path)
	if err := s.client.Pull(ctx, s.path, s.opts); err != nil {
		return nil, fmt.Errorf("failed to pull %s: %w", s.path, err)
	}

	return result, nil
}
