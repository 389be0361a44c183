package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/mathdaddy/pkg/lexer"
	"github.com/leapstack-labs/mathdaddy/pkg/token"
	"golang.org/x/text/language"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	for name := range c.Bindings {
		if err := ValidateBindingName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBindingName checks that name lexes as exactly one symbol token, so
// a statement can refer to it.
func ValidateBindingName(name string) error {
	seq := lexer.Tokenize(name)
	if len(seq) != 1 || seq[0].Type != token.SYMBOL || seq[0].Literal != name {
		return fmt.Errorf("invalid binding name %q: must be a single identifier that is not a number", name)
	}
	return nil
}

// ParseBinding parses a name=value pair as given to --bind.
func ParseBinding(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid binding %q: want name=value", s)
	}
	name = strings.TrimSpace(name)
	if err := ValidateBindingName(name); err != nil {
		return "", 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid binding %q: %w", s, err)
	}
	return name, v, nil
}
