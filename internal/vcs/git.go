// Package vcs initializes version-control repositories in new projects.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
)

// Initializer creates a repository in a directory.
type Initializer interface {
	Init(ctx context.Context, dir string) error
}

// Git runs `git init`.
type Git struct {
	// Binary is the git executable name or path. Defaults to "git".
	Binary string
}

// NewGit returns a Git initializer using the git found on PATH.
func NewGit() *Git {
	return &Git{Binary: "git"}
}

// Init runs `git init` with dir as the working directory and waits for it.
// A missing binary or a non-zero exit is returned as *errors.GitInitError.
// Error output from a successful run is logged, not treated as failure.
func (g *Git) Init(ctx context.Context, dir string) error {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return &oerrors.GitInitError{Dir: dir, Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "init")
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	output.Debug("running git init", "dir", dir, "git", path)

	if err := cmd.Run(); err != nil {
		return &oerrors.GitInitError{
			Dir:    dir,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		output.Warn("git init reported", "dir", dir, "stderr", msg)
	}
	output.Debug("git init finished", "output", strings.TrimSpace(stdout.String()))

	return nil
}
