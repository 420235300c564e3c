package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quickstart-dev/quickstart/internal/config"
	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/templates"
)

const templatesDirFlag = "templates-dir"

// addTemplatesDirFlag registers --templates-dir on c.
func addTemplatesDirFlag(c *cobra.Command, target *string) {
	c.Flags().StringVar(target, templatesDirFlag, "",
		"Templates folder to use instead of the bundled one (env: QUICKSTART_TEMPLATES_DIR)")
}

// resolveTemplatesRoot resolves the templates root with precedence:
// (1) --templates-dir, (2) env/config, (3) the folder next to the executable.
func resolveTemplatesRoot(c *cobra.Command, cfg *GlobalConfig, flagValue string) (config.ResolvedValue, error) {
	defaultRoot, err := templates.DefaultRoot()
	if err != nil {
		return config.ResolvedValue{}, &oerrors.ExitError{
			Code: oerrors.ExitGeneralError,
			Err:  err,
		}
	}

	rv := config.ResolveString("templatesDir",
		flagValue, c.Flags().Changed(templatesDirFlag),
		cfg.Config.TemplatesDir, cfg.source("templatesDir"),
		defaultRoot,
	)

	expanded, err := config.ExpandPath(rv.Value)
	if err != nil {
		return rv, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	rv.Value = expanded
	return rv, nil
}

// validateArgs wraps a cobra positional-args check so a mismatch exits with
// the validation exit code.
func validateArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := check(c, args); err != nil {
			return &oerrors.ExitError{
				Code: oerrors.ExitValidationError,
				Err:  oerrors.NewValidationError(err.Error(), "", "Run '"+c.CommandPath()+" --help' for usage."),
			}
		}
		return nil
	}
}
