package config

import (
	"fmt"
	"os"

	"github.com/quickstart-dev/quickstart/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveString resolves a string setting with precedence:
// (1) flag (when changed), (2) env/config value, (3) default.
// configSource tells whether configValue came from env or the config file.
func ResolveString(key, flagValue string, flagChanged bool, configValue string, configSource ConfigSource, defaultValue string) ResolvedValue {
	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}

	switch {
	case flagChanged:
		result.Value = flagValue
		result.Source = SourceFlag
		if configValue != "" {
			result.Shadowed[configSource] = configValue
		}
	case configValue != "":
		result.Value = configValue
		result.Source = configSource
	default:
		result.Value = defaultValue
		result.Source = SourceDefault
	}

	return result
}

// ResolveBool resolves a boolean setting with precedence:
// (1) flag (when changed), (2) env/config value, (3) false.
func ResolveBool(key string, flagValue, flagChanged, configValue bool, configSource ConfigSource) (bool, ResolvedValue) {
	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	value := false

	switch {
	case flagChanged:
		value = flagValue
		result.Source = SourceFlag
		if configSource != SourceDefault && configSource != "" {
			result.Shadowed[configSource] = fmt.Sprint(configValue)
		}
	case configSource != SourceDefault && configSource != "":
		value = configValue
		result.Source = configSource
	default:
		result.Source = SourceDefault
	}

	result.Value = fmt.Sprint(value)
	return value, result
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) QUICKSTART_CONFIG env, (3) ~/.quickstart/config.yaml
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	if flagValue != "" {
		return ResolveConfigPathResult{ConfigPath: flagValue, Source: SourceFlag}, nil
	}
	if envValue := os.Getenv("QUICKSTART_CONFIG"); envValue != "" {
		return ResolveConfigPathResult{ConfigPath: envValue, Source: SourceEnv}, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return ResolveConfigPathResult{}, err
	}
	return ResolveConfigPathResult{ConfigPath: paths.ConfigFile, Source: SourceDefault}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
