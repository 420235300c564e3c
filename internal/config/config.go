// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the quickstart configuration.
// Loaded from ~/.quickstart/config.yaml; environment variables override file values.
type Config struct {
	// TemplatesDir overrides the templates folder bundled with the installation.
	// Env: QUICKSTART_TEMPLATES_DIR
	TemplatesDir string `mapstructure:"templatesDir" yaml:"templatesDir,omitempty"`

	// Git initializes a git repository when --git is not given.
	// Env: QUICKSTART_GIT
	Git bool `mapstructure:"git" yaml:"git"`

	// Install installs dependencies when --install is not given.
	// Env: QUICKSTART_INSTALL
	Install bool `mapstructure:"install" yaml:"install"`

	// PackageManager forces npm, yarn or pnpm. Empty means detect from lockfiles.
	// Env: QUICKSTART_PACKAGE_MANAGER
	PackageManager string `mapstructure:"packageManager" yaml:"packageManager,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `quickstart config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Git:     false,
		Install: false,
		Log: LogConfig{
			Timestamps: boolPtr(false),
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
