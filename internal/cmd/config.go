package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quickstart-dev/quickstart/internal/config"
	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
)

// configHeader is written above the generated config.
const configHeader = `# quickstart configuration
# Environment variables (QUICKSTART_*) override these values,
# and command-line flags override both.

`

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the quickstart CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))

	return c
}

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: `Create a quickstart configuration file with default values.

The file is created at ~/.quickstart/config.yaml by default.
Use --config or QUICKSTART_CONFIG to choose a different location.

Examples:
  # Initialize configuration
  quickstart config init

  # Overwrite existing configuration
  quickstart config init --force`,
		Args: validateArgs(cobra.NoArgs),
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *GlobalConfig, force bool) error {
	configFile := cfg.ConfigPath
	if configFile == "" {
		var err error
		configFile, err = config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
		}
	}

	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}

	if exists && !force {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err: &oerrors.DetailError{
				Type:     "validation failed",
				Message:  "configuration already exists",
				Location: expandedPath,
				Hint:     "Use --force to overwrite existing configuration.",
				Cause:    oerrors.ErrValidation,
			},
		}
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create config directory")
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+expandedPath)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", expandedPath)
	return nil
}
