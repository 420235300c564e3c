// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quickstart-dev/quickstart/internal/config"
	oerrors "github.com/quickstart-dev/quickstart/internal/errors"
	"github.com/quickstart-dev/quickstart/internal/output"
	"github.com/quickstart-dev/quickstart/internal/version"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration. Never nil after startup.
	Config *config.Config

	// Loader reports the source (env, config, default) of loaded values.
	Loader *config.Loader

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigErr is set when the config file could not be loaded or is
	// invalid. Commands that depend on config values fail with it.
	ConfigErr error

	Verbose bool
}

// source returns where the loaded value for key came from.
func (g *GlobalConfig) source(key string) config.ConfigSource {
	if g.Loader == nil {
		return config.SourceDefault
	}
	return g.Loader.Source(key)
}

// requireConfig returns a validation ExitError if the config could not be used.
func (g *GlobalConfig) requireConfig() error {
	if g.ConfigErr == nil {
		return nil
	}
	return &oerrors.ExitError{
		Code: oerrors.ExitValidationError,
		Err: &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  g.ConfigErr.Error(),
			Location: g.ConfigPath,
			Hint:     "Fix the file or recreate it with: quickstart config init --force",
			Cause:    oerrors.ErrValidation,
		},
	}
}

// NewRootCmd creates the root command for the quickstart CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{Config: config.DefaultConfig()}

	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "quickstart",
		Short: "Create new projects from templates",
		Long: `quickstart creates a new project by copying a named template.

It can also initialize a git repository and install dependencies
with npm, yarn or pnpm.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, configFlag, verboseFlag, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: QUICKSTART_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  oerrors.NewValidationError(err.Error(), "", "Run '"+c.CommandPath()+" --help' for usage."),
		}
	})

	rootCmd.AddCommand(NewCreateCmd(cfg))
	rootCmd.AddCommand(NewTemplatesCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, cfg *GlobalConfig, configFlag string, verbose, timestamps bool) error {
	cfg.Verbose = verbose

	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}
	cfg.ConfigPath = pathResult.ConfigPath

	loader := config.NewLoader()
	loaded, loadErr := loader.Load(cfg.ConfigPath)
	if loadErr == nil {
		cfg.Config = loaded
		cfg.Loader = loader
		cfg.ConfigErr = config.Validate(loaded)
	} else {
		cfg.ConfigErr = loadErr
	}

	// Build LogConfig with precedence: flag > config > default(false)
	logCfg := output.LogConfig{Verbose: verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if cfg.ConfigErr == nil && cfg.Config.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("quickstart started", "version", info.Version, "config", cfg.ConfigPath, "config_source", pathResult.Source)
	if cfg.ConfigErr != nil {
		output.Debug("config not usable", "error", cfg.ConfigErr)
	}

	return nil
}
