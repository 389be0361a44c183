// Package config provides configuration management for the mathdaddy CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Verbose         bool               `koanf:"verbose"`
	OutputFormat    string             `koanf:"output"`
	Strict          bool               `koanf:"strict"`
	RightAssocPower bool               `koanf:"right_assoc_power"`
	Bindings        map[string]float64 `koanf:"bindings"`
	Locale          string             `koanf:"locale"`
	Server          ServerConfig       `koanf:"server"`
	Batch           BatchConfig        `koanf:"batch"`
}

// ServerConfig holds configuration for the HTTP solve server.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	Watch           bool          `koanf:"watch"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// BatchConfig holds configuration for batch solving.
type BatchConfig struct {
	Workers int `koanf:"workers"`
}

// Default configuration values.
const (
	DefaultOutput     = "text"
	DefaultLocale     = "en"
	DefaultServerAddr = ":8723"
	DefaultWorkers    = 4

	// DefaultShutdownTimeout bounds graceful server shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// ConfigFileName is the name of the config file.
	ConfigFileName = "mathdaddy.yaml"
	// ConfigFileNameAlt is the alternate name of the config file.
	ConfigFileNameAlt = "mathdaddy.yml"

	// EnvPrefix prefixes every environment variable the loader reads.
	EnvPrefix = "MATHDADDY_"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"text", "table", "json", "yaml", "markdown"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Locale:       DefaultLocale,
		Bindings:     map[string]float64{},
		Server:       ServerConfig{Addr: DefaultServerAddr, ShutdownTimeout: DefaultShutdownTimeout},
		Batch:        BatchConfig{Workers: DefaultWorkers},
	}
}
