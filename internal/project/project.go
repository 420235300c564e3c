// Package project creates a new project from a template: it resolves the
// template, copies it, then optionally initializes git and installs
// dependencies.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quickstart-dev/quickstart/internal/copier"
	"github.com/quickstart-dev/quickstart/internal/install"
	"github.com/quickstart-dev/quickstart/internal/output"
	"github.com/quickstart-dev/quickstart/internal/tasks"
	"github.com/quickstart-dev/quickstart/internal/vcs"
)

// Step titles, in execution order.
const (
	StepCopy    = "Copy project files"
	StepGit     = "Initialize git"
	StepInstall = "Install dependencies"
)

// InstallSkipMessage is shown when dependency installation was not requested.
const InstallSkipMessage = "Pass --install to automatically install dependencies"

// Options is the configuration for one project creation.
type Options struct {
	// TemplateName selects the template directory under the templates root.
	TemplateName string

	// TargetDirectory is where the project is created. Empty means the
	// current working directory. Create makes it absolute.
	TargetDirectory string

	// TemplateDirectory is set by Create once the template is resolved.
	TemplateDirectory string

	// Git enables the git init step.
	Git bool

	// RunInstall enables the dependency install step.
	RunInstall bool

	// PackageManager forces npm, yarn or pnpm. Empty means detect.
	PackageManager string
}

// Result is the outcome of Create.
type Result struct {
	// TargetDirectory is the absolute project directory.
	TargetDirectory string

	// Copy lists copied and kept files. Nil if the copy step did not finish.
	Copy *copier.Result

	// Report holds per-step states. Nil if template resolution failed.
	Report *tasks.Report
}

// TemplateResolver maps a template name to its directory.
type TemplateResolver interface {
	Resolve(name string) (string, error)
}

// Creator runs the create pipeline.
type Creator struct {
	resolver  TemplateResolver
	git       vcs.Initializer
	installer install.Installer
	runner    *tasks.Runner
}

// Option configures a Creator.
type Option func(*Creator)

// WithInitializer replaces the git initializer.
func WithInitializer(i vcs.Initializer) Option {
	return func(c *Creator) {
		c.git = i
	}
}

// WithInstaller replaces the dependency installer. Without it, Create uses
// install.PackageManager with Options.PackageManager.
func WithInstaller(i install.Installer) Option {
	return func(c *Creator) {
		c.installer = i
	}
}

// WithRunner replaces the task runner, e.g. to attach a reporter.
func WithRunner(r *tasks.Runner) Option {
	return func(c *Creator) {
		c.runner = r
	}
}

// NewCreator creates a Creator resolving templates with resolver.
func NewCreator(resolver TemplateResolver, opts ...Option) *Creator {
	c := &Creator{
		resolver: resolver,
		git:      vcs.NewGit(),
		runner:   tasks.NewRunner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create resolves the template and runs the copy, git and install steps in
// order. Nothing is written when resolution fails. A failing step is returned
// as *tasks.StepError wrapping the component error; the partial Result is
// returned alongside it.
func (c *Creator) Create(ctx context.Context, opts *Options) (*Result, error) {
	target, err := absTarget(opts.TargetDirectory)
	if err != nil {
		return nil, err
	}
	opts.TargetDirectory = target

	dir, err := c.resolver.Resolve(opts.TemplateName)
	if err != nil {
		return nil, err
	}
	opts.TemplateDirectory = dir

	output.Debug("creating project",
		"template", opts.TemplateName,
		"from", opts.TemplateDirectory,
		"to", opts.TargetDirectory,
		"git", opts.Git,
		"install", opts.RunInstall,
	)

	installer := c.installer
	if installer == nil {
		installer = install.NewPackageManager(opts.PackageManager)
	}

	result := &Result{TargetDirectory: target}

	steps := []tasks.Task{
		{
			Title: StepCopy,
			Action: func(ctx context.Context) error {
				res, err := copier.Copy(ctx, os.DirFS(opts.TemplateDirectory), opts.TargetDirectory)
				result.Copy = res
				return err
			},
		},
		{
			Title:   StepGit,
			Enabled: func() bool { return opts.Git },
			Action: func(ctx context.Context) error {
				return c.git.Init(ctx, opts.TargetDirectory)
			},
		},
		{
			Title: StepInstall,
			Skip: func() string {
				if !opts.RunInstall {
					return InstallSkipMessage
				}
				return ""
			},
			Action: func(ctx context.Context) error {
				return installer.Install(ctx, opts.TargetDirectory)
			},
		},
	}

	report, err := c.runner.Run(ctx, steps)
	result.Report = report
	return result, err
}

func absTarget(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving target directory %q: %w", dir, err)
	}
	return abs, nil
}
