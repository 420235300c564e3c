package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quickstart-dev/quickstart/internal/config"
	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/install"
	"github.com/quickstart-dev/quickstart/internal/output"
	"github.com/quickstart-dev/quickstart/internal/project"
	"github.com/quickstart-dev/quickstart/internal/tasks"
	"github.com/quickstart-dev/quickstart/internal/templates"
)

// createFlags holds the flag values of the create command.
type createFlags struct {
	git            bool
	install        bool
	templatesDir   string
	packageManager string
}

// NewCreateCmd creates the create command.
func NewCreateCmd(cfg *GlobalConfig) *cobra.Command {
	var flags createFlags

	c := &cobra.Command{
		Use:   "create <template> [target-directory]",
		Short: "Create a new project from a template",
		Long: `Create a new project by copying a template into a target directory.

Files that already exist in the target directory are never overwritten.
The target directory defaults to the current directory.

Examples:
  # Create a TypeScript project in ./demo-app
  quickstart create typescript demo-app

  # Also initialize git and install dependencies
  quickstart create typescript demo-app --git --install

  # Force a package manager instead of detecting it from lockfiles
  quickstart create typescript demo-app -i --package-manager pnpm`,
		Args: validateArgs(cobra.RangeArgs(1, 2)),
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args, cfg, flags)
		},
	}

	c.Flags().BoolVarP(&flags.git, "git", "g", false, "Initialize a git repository (env: QUICKSTART_GIT)")
	c.Flags().BoolVarP(&flags.install, "install", "i", false, "Install dependencies (env: QUICKSTART_INSTALL)")
	c.Flags().StringVar(&flags.packageManager, "package-manager", "",
		fmt.Sprintf("Package manager to use (%s); detected from lockfiles when empty", strings.Join(install.Managers(), ", ")))
	addTemplatesDirFlag(c, &flags.templatesDir)

	return c
}

func runCreate(c *cobra.Command, args []string, cfg *GlobalConfig, flags createFlags) error {
	if err := cfg.requireConfig(); err != nil {
		return err
	}

	root, err := resolveTemplatesRoot(c, cfg, flags.templatesDir)
	if err != nil {
		return err
	}

	git, gitRV := config.ResolveBool("git", flags.git, c.Flags().Changed("git"), cfg.Config.Git, cfg.source("git"))
	runInstall, installRV := config.ResolveBool("install", flags.install, c.Flags().Changed("install"), cfg.Config.Install, cfg.source("install"))
	manager := config.ResolveString("packageManager",
		flags.packageManager, c.Flags().Changed("package-manager"),
		cfg.Config.PackageManager, cfg.source("packageManager"), "")

	config.LogResolvedValues([]config.ResolvedValue{root, gitRV, installRV, manager})

	if !install.IsValidManager(manager.Value) {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: oerrors.NewValidationError(
				fmt.Sprintf("unsupported package manager: %s", manager.Value),
				"",
				fmt.Sprintf("Valid package managers: %s", strings.Join(install.Managers(), ", ")),
			),
		}
	}

	opts := &project.Options{
		TemplateName:   args[0],
		Git:            git,
		RunInstall:     runInstall,
		PackageManager: manager.Value,
	}
	if len(args) > 1 {
		opts.TargetDirectory = args[1]
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := c.OutOrStdout()
	errOut := c.ErrOrStderr()

	resolver := templates.NewResolver(root.Value)
	runner := tasks.NewRunner(
		tasks.WithReporter(output.NewTaskReporter(out)),
		tasks.WithExec(func(ctx context.Context, title string, action func(context.Context) error) error {
			return output.RunWithSpinner(ctx, action, output.WithTitle(title))
		}),
	)
	creator := project.NewCreator(resolver, project.WithRunner(runner))

	result, err := creator.Create(ctx, opts)
	if err != nil {
		return reportCreateError(errOut, resolver, err)
	}

	output.PrintDone(out, "Project ready")
	fmt.Fprint(out, output.RenderFileTree(filepath.Base(result.TargetDirectory), copiedFiles(result)))
	return nil
}

// reportCreateError prints the error banner for a failed create and returns
// the matching ExitError.
func reportCreateError(w io.Writer, resolver *templates.Resolver, err error) error {
	if errors.Is(err, oerrors.ErrTemplateNotFound) {
		output.PrintError(w, "Invalid template name")
		fmt.Fprintf(w, "  %s\n", err)
		if names := resolver.Names(); len(names) > 0 {
			fmt.Fprintf(w, "  Available templates: %s\n", strings.Join(names, ", "))
		} else {
			fmt.Fprintf(w, "  No templates found in %s\n", resolver.Root())
		}
		return &oerrors.ExitError{Code: oerrors.ExitNotFound, Err: err, Printed: true}
	}

	var stepErr *tasks.StepError
	if errors.As(err, &stepErr) {
		output.PrintError(w, fmt.Sprintf("%s failed", stepErr.Title))
		fmt.Fprintf(w, "  %s\n", stepErr.Err)
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err, Printed: true}
	}

	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}

// copiedFiles maps every file the copy touched to its tree annotation.
func copiedFiles(result *project.Result) map[string]string {
	files := make(map[string]string)
	if result.Copy == nil {
		return files
	}
	for _, p := range result.Copy.Copied {
		files[p] = ""
	}
	for _, p := range result.Copy.Skipped {
		files[p] = "kept existing"
	}
	return files
}
