package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps flag names whose config key is nested or renamed.
var flagKeys = map[string]string{
	"addr":             "server.addr",
	"watch":            "server.watch",
	"shutdown-timeout": "server.shutdown_timeout",
	"workers":          "batch.workers",
}

// skipFlags are flags handled outside koanf.
var skipFlags = map[string]bool{
	"config": true,
	"bind":   true,
	"help":   true,
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configIn returns the config file in dir, or "".
func configIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a mathdaddy config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if path := configIn(dir); path != "" {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, file, environment variables
// and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"verbose":                 false,
		"output":                  def.OutputFormat,
		"strict":                  false,
		"right_assoc_power":       false,
		"locale":                  def.Locale,
		"server.addr":             def.Server.Addr,
		"server.watch":            false,
		"server.shutdown_timeout": def.Server.ShutdownTimeout.String(),
		"batch.workers":           def.Batch.Workers,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = cfgFile
	if configFileUsed == "" {
		if cwd, err := os.Getwd(); err == nil {
			configFileUsed = findConfigUpward(cwd)
		}
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (MATHDADDY_ prefix)
	// Transform: MATHDADDY_SERVER__ADDR -> server.addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			// "5s" durations and numbers given as env strings
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = map[string]float64{}
	}

	// 6. --bind name=value pairs are merged last
	if flags != nil && flags.Lookup("bind") != nil {
		pairs, err := flags.GetStringArray("bind")
		if err != nil {
			return nil, fmt.Errorf("failed to read --bind: %w", err)
		}
		for _, pair := range pairs {
			name, v, err := ParseBinding(pair)
			if err != nil {
				return nil, err
			}
			cfg.Bindings[name] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// envKey maps MATHDADDY_RIGHT_ASSOC_POWER to right_assoc_power and uses a
// double underscore for nesting.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
