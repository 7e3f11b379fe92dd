package gitsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GoGitClient implements [Client] in process with go-git.
type GoGitClient struct{}

// Clone performs a (shallow when Depth > 0) clone of opts.URL into path.
func (GoGitClient) Clone(ctx context.Context, path string, opts Options) error {
	co := &git.CloneOptions{
		URL:   opts.URL,
		Depth: opts.Depth,
		Auth:  authFor(opts),
	}
	if opts.Branch != "" {
		co.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		co.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, path, false, co); err != nil {
		return err
	}
	return nil
}

// Pull fetches and merges origin into the worktree at path. Being already up to date is not an error.
func (GoGitClient) Pull(ctx context.Context, path string, opts Options) error {
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	po := &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Depth:      opts.Depth,
		Auth:       authFor(opts),
	}
	if opts.Branch != "" {
		po.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		po.SingleBranch = true
	}

	err = wt.PullContext(ctx, po)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// authFor uses HTTPS basic auth when a token is configured.
func authFor(opts Options) transport.AuthMethod {
	if opts.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "git", Password: opts.Token}
}
