package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabx/internal/config"
	"github.com/oakwood-commons/tabx/internal/limiter"
	"github.com/oakwood-commons/tabx/pkg/table"
)

// Environment variables consulted between explicit flags and the config file.
const (
	envOutput      = "TABX_OUTPUT"
	envOnMissing   = "TABX_ON_MISSING"
	envPlaceholder = "TABX_PLACEHOLDER"
	envColumns     = "TABX_COLUMNS"
)

// loadDefaults reads the optional YAML defaults file. An empty path means no
// file was requested and yields zero defaults.
func loadDefaults(path string) (config.Defaults, error) {
	var d config.Defaults
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return d, nil
}

// effectiveOutput returns the output format to use based on CLI flag > env var > config > default.
// An invalid environment value falls through; invalid flag and config values
// surface through validateOutputFormat on the resolved result.
func effectiveOutput(defaults config.Defaults) string {
	if outputFormat != "" {
		return outputFormat
	}
	if envVal := os.Getenv(envOutput); envVal != "" && isValidOutputFormat(envVal) {
		return envVal
	}
	if defaults.Output != "" {
		return defaults.Output
	}
	return outputTable
}

// effectiveOnMissing returns the missing-field mode based on CLI flag > env var > config > default.
// The flag was already validated by pflag; a bad config value is an error
// rather than a silent fallback.
func effectiveOnMissing(defaults config.Defaults) (table.MissingFieldMode, error) {
	if onMissing != "" {
		return table.MissingFieldMode(onMissing), nil
	}
	if envVal := os.Getenv(envOnMissing); envVal != "" && isValidMissingMode(envVal) {
		return table.MissingFieldMode(envVal), nil
	}
	if defaults.OnMissing != "" {
		if !isValidMissingMode(defaults.OnMissing) {
			return "", fmt.Errorf("invalid on_missing %q in config (expected placeholder or fail)", defaults.OnMissing)
		}
		return table.MissingFieldMode(defaults.OnMissing), nil
	}
	return table.MissingFieldPlaceholder, nil
}

func isValidMissingMode(value string) bool {
	switch table.MissingFieldMode(value) {
	case table.MissingFieldPlaceholder, table.MissingFieldFail:
		return true
	}
	return false
}

// effectivePlaceholder returns the placeholder based on CLI flag > env var > config > default.
// The empty string is a legal explicit placeholder, so presence decides, not
// the value.
func effectivePlaceholder(cmd *cobra.Command, defaults config.Defaults) string {
	if cmd.Flags().Changed("placeholder") {
		return placeholder
	}
	if envVal, ok := os.LookupEnv(envPlaceholder); ok {
		return envVal
	}
	if defaults.Placeholder != nil {
		return *defaults.Placeholder
	}
	return ""
}

// effectiveColumns returns the header list based on CLI flag > env var > config > loader-derived.
func effectiveColumns(defaults config.Defaults, derived []string) []string {
	if len(columnsFlag) > 0 {
		return columnsFlag
	}
	if envVal := os.Getenv(envColumns); envVal != "" {
		if cols := splitColumns(envVal); len(cols) > 0 {
			return cols
		}
	}
	if len(defaults.Columns) > 0 {
		return defaults.Columns
	}
	return derived
}

// splitColumns parses a comma-separated header list, trimming whitespace and
// dropping empty entries.
func splitColumns(value string) []string {
	var out []string
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// effectiveLimits returns the record-limiting config. Explicit flags replace
// the whole group so a config file limit cannot conflict with a flag tail.
func effectiveLimits(defaults config.Defaults) limiter.Config {
	if limitRecords != 0 || offsetRecords != 0 || tailRecords != 0 {
		return limiter.Config{Limit: limitRecords, Offset: offsetRecords, Tail: tailRecords}
	}
	return limiter.Config{Limit: defaults.Limit, Offset: defaults.Offset, Tail: defaults.Tail}
}
