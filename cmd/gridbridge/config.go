package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/oisee/gridbridge/pkg/grid"
)

// appConfig is the resolved process configuration.
type appConfig struct {
	Token        string
	BaseURL      string
	Timeout      time.Duration
	ReadOnly     bool
	AllowedBases []string
	Verbose      bool
	LogFormat    string

	AnthropicKey   string
	AnthropicModel string
	Port           string
}

func newEnvReplacer() *strings.Replacer {
	return strings.NewReplacer("-", "_")
}

// resolveConfig reads the configuration bound to v.
func resolveConfig(v *viper.Viper) (*appConfig, error) {
	cfg := &appConfig{
		Token:          v.GetString("token"),
		BaseURL:        v.GetString("base-url"),
		ReadOnly:       v.GetBool("read-only"),
		AllowedBases:   splitList(v.GetStringSlice("allowed-bases")),
		Verbose:        v.GetBool("verbose"),
		LogFormat:      v.GetString("log-format"),
		AnthropicKey:   v.GetString("anthropic_api_key"),
		AnthropicModel: v.GetString("anthropic-model"),
		Port:           v.GetString("port"),
	}
	if cfg.Port == "" {
		cfg.Port = v.GetString("plain_port")
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}
	cfg.Timeout = timeout

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma-separated entries; viper only splits
// environment values on whitespace.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *appConfig) validate() error {
	if c.Token == "" {
		return fmt.Errorf("access token is required. Use --token flag or GRID_TOKEN environment variable")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", c.LogFormat)
	}
	return nil
}

// gridOptions converts the configuration into client options.
func (c *appConfig) gridOptions(lg zerolog.Logger) []grid.Option {
	opts := []grid.Option{
		grid.WithBaseURL(c.BaseURL),
		grid.WithTimeout(c.Timeout),
		grid.WithUserAgent("gridbridge/" + Version),
		grid.WithLogger(lg),
	}
	if c.ReadOnly {
		opts = append(opts, grid.WithReadOnly())
	}
	if len(c.AllowedBases) > 0 {
		opts = append(opts, grid.WithAllowedBases(c.AllowedBases...))
	}
	return opts
}

// newLogger creates the process logger. It always writes to stderr so the
// MCP stdio transport keeps stdout to itself.
func (c *appConfig) newLogger() zerolog.Logger {
	return newLoggerTo(os.Stderr, c.LogFormat, c.Verbose)
}

func newLoggerTo(w io.Writer, format string, verbose bool) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// logStartupInfo outputs startup information at debug level.
func (c *appConfig) logStartupInfo(lg zerolog.Logger, mode string) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = grid.DefaultBaseURL
	}
	lg.Debug().Str("mode", mode).Str("base_url", baseURL).Dur("timeout", c.Timeout).Msg("starting gridbridge")

	switch {
	case c.ReadOnly:
		lg.Info().Msg("safety: read-only mode enabled")
	case len(c.AllowedBases) == 0:
		lg.Debug().Msg("safety: unrestricted (no safety checks active)")
	}
	if len(c.AllowedBases) > 0 {
		lg.Info().Strs("allowed_bases", c.AllowedBases).Msg("safety: base allow-list active")
	}
}
