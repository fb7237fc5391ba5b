// gridbridge exposes a remote tabular-data service (bases, tables and
// records) to AI assistants over MCP and to other programs over REST.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// stringFlag defines a string CLI flag
type stringFlag struct {
	name, shorthand, defaultValue, description string
}

// boolFlag defines a bool CLI flag
type boolFlag struct {
	name, shorthand, description string
	defaultValue                 bool
}

// sliceFlag defines a string slice CLI flag
type sliceFlag struct {
	name, description string
}

var stringFlags = []stringFlag{
	{"token", "t", "", "Access token for the tabular-data API"},
	{"base-url", "", "", "API root (default https://api.airtable.com/v0)"},
	{"timeout", "", "30s", "Timeout for each remote call"},
	{"log-format", "", "console", "Log format: console or json"},
}

var boolFlags = []boolFlag{
	{"read-only", "", "Block all write operations (create, update, delete)", false},
	{"verbose", "v", "Enable debug logging to stderr", false},
}

var sliceFlags = []sliceFlag{
	{"allowed-bases", "Restrict operations to specific bases (comma-separated, supports wildcards like app1*)"},
}

// newViper returns a viper instance reading GRID_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GRID")
	v.SetEnvKeyReplacer(newEnvReplacer())
	v.AutomaticEnv()
	_ = v.BindEnv("anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("plain_port", "PORT")
	return v
}

// newRootCmd builds the command tree. Configuration priority is
// flags > GRID_* environment > .env file > defaults.
func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridbridge",
		Short: "MCP and REST bridge for a remote tabular-data service",
		Long: `gridbridge exposes bases, tables and records of a remote tabular-data
service as MCP tools (list, get, create, update, delete and search records)
and as a REST API.

Without a subcommand it runs the MCP server on stdio.

Examples:
  # Using environment variables
  GRID_TOKEN=pat123 gridbridge

  # Using command-line flags
  gridbridge --token pat123 --read-only

  # REST API on port 8080
  gridbridge serve --port 8080

  # Using .env file
  gridbridge  # reads from .env in current directory`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd, v, "stdio", "")
		},
	}

	flags := rootCmd.PersistentFlags()
	for _, f := range stringFlags {
		flags.StringP(f.name, f.shorthand, f.defaultValue, f.description)
		_ = v.BindPFlag(f.name, flags.Lookup(f.name))
	}
	for _, f := range boolFlags {
		flags.BoolP(f.name, f.shorthand, f.defaultValue, f.description)
		_ = v.BindPFlag(f.name, flags.Lookup(f.name))
	}
	for _, f := range sliceFlags {
		flags.StringSlice(f.name, nil, f.description)
		_ = v.BindPFlag(f.name, flags.Lookup(f.name))
	}

	rootCmd.AddCommand(newMCPCmd(v), newServeCmd(v), newScriptCmd(v), newWorkflowCmd(v))
	return rootCmd
}

func main() {
	// Load .env file if it exists (ignore error - file is optional)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newViper()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
