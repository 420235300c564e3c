package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
	"github.com/quickstart-dev/quickstart/internal/templates"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(cfg *GlobalConfig) *cobra.Command {
	var templatesDir string

	c := &cobra.Command{
		Use:   "templates",
		Short: "List available templates",
		Long: `List the templates that quickstart create accepts.

A template is a directory under the templates folder. An optional
<name>.yaml file next to that directory supplies the description:

  description: TypeScript project compiled with tsc`,
		Args: validateArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			return runTemplates(c, cfg, templatesDir)
		},
	}

	addTemplatesDirFlag(c, &templatesDir)

	return c
}

func runTemplates(c *cobra.Command, cfg *GlobalConfig, templatesDir string) error {
	if err := cfg.requireConfig(); err != nil {
		return err
	}

	root, err := resolveTemplatesRoot(c, cfg, templatesDir)
	if err != nil {
		return err
	}

	list, err := templates.NewResolver(root.Value).List()
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	out := c.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintf(out, "No templates found in %s\n", root.Value)
		return nil
	}

	rows := make([]output.TemplateRow, len(list))
	for i, t := range list {
		rows[i] = output.TemplateRow{Name: t.Name, Description: t.Description}
	}
	fmt.Fprintln(out, output.RenderTemplateTable(rows))
	return nil
}
