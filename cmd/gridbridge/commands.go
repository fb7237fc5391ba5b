package main

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oisee/gridbridge/internal/completion"
	"github.com/oisee/gridbridge/internal/httpapi"
	"github.com/oisee/gridbridge/internal/mcp"
	"github.com/oisee/gridbridge/pkg/dsl"
	"github.com/oisee/gridbridge/pkg/grid"
	"github.com/oisee/gridbridge/pkg/scripting"
)

func newMCPCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server",
		Long: `Run the MCP server on stdio (default) or on the Streamable HTTP transport.

Examples:
  gridbridge mcp
  gridbridge mcp --transport http --addr 127.0.0.1:8483`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			addr, _ := cmd.Flags().GetString("addr")
			return runMCP(cmd, v, transport, addr)
		},
	}
	cmd.Flags().String("transport", string(mcp.TransportStdio), "MCP transport: stdio or http")
	cmd.Flags().String("addr", "127.0.0.1:8483", "Listen address for the http transport")
	return cmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		Long: `Run the REST API. POST /completions is mounted only when
ANTHROPIC_API_KEY is set.

Examples:
  gridbridge serve --port 8080
  PORT=3000 gridbridge serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v)
		},
	}
	cmd.Flags().String("port", "", "Listen port (env GRID_PORT or PORT, default 8080)")
	cmd.Flags().String("anthropic-model", completion.DefaultModel, "Default model for /completions")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("anthropic-model", cmd.Flags().Lookup("anthropic-model"))
	return cmd
}

func runMCP(cmd *cobra.Command, v *viper.Viper, transport, addr string) error {
	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	lg := cfg.newLogger()
	cfg.logStartupInfo(lg, "mcp/"+transport)

	client := grid.NewClient(cfg.Token, cfg.gridOptions(lg)...)
	server := mcp.NewServer(&mcp.Config{
		Service:  client,
		Logger:   lg,
		ReadOnly: cfg.ReadOnly,
		Version:  Version,
	})
	return server.Serve(cmd.Context(), mcp.Transport(transport), addr)
}

func runServe(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	lg := cfg.newLogger()
	cfg.logStartupInfo(lg, "rest")

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	apiCfg := &httpapi.Config{
		Service: grid.NewClient(cfg.Token, cfg.gridOptions(lg)...),
		Logger:  lg,
	}
	if cfg.AnthropicKey != "" {
		apiCfg.Completer = completion.New(completion.Config{
			APIKey: cfg.AnthropicKey,
			Model:  cfg.AnthropicModel,
			Logger: lg,
		})
	}
	return httpapi.New(apiCfg).ListenAndServe(cmd.Context(), net.JoinHostPort("", port))
}

func newScriptCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "script [file.lua]",
		Short: "Run a Lua script against the grid API",
		Long: `Run a Lua script with the grid operations bound as globals.
Without a file, start an interactive REPL.

Examples:
  gridbridge script cleanup.lua
  gridbridge script --read-only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, v, args)
		},
	}
}

func runScript(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	lg := cfg.newLogger()
	cfg.logStartupInfo(lg, "script")

	engine := scripting.NewLuaEngine(grid.NewClient(cfg.Token, cfg.gridOptions(lg)...))
	defer engine.Close()
	engine.SetContext(cmd.Context())
	engine.SetOutput(cmd.OutOrStdout())

	if len(args) == 0 {
		engine.REPL(cmd.InOrStdin())
		return nil
	}
	if err := engine.ExecuteFile(args[0]); err != nil {
		return fmt.Errorf("script %s: %w", args[0], err)
	}
	return nil
}

func newWorkflowCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow <file.yaml>",
		Short: "Run a YAML workflow of grid operations",
		Long: `Run a YAML workflow. Steps run in order; each step's output can be
saved with saveAs and referenced later as ${name}.

Examples:
  gridbridge workflow close-stale.yaml --dry-run
  gridbridge workflow report.yaml --var base=appXXXX`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd, v, args[0])
		},
	}
	cmd.Flags().Bool("dry-run", false, "Report write actions without performing them")
	cmd.Flags().StringToString("var", nil, "Workflow variables (name=value), overriding the file")
	return cmd
}

func runWorkflow(cmd *cobra.Command, v *viper.Viper, path string) error {
	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	lg := cfg.newLogger()
	cfg.logStartupInfo(lg, "workflow")

	engine := dsl.NewWorkflowEngine(grid.NewClient(cfg.Token, cfg.gridOptions(lg)...), lg)
	engine.SetOutput(cmd.OutOrStdout())

	wf, err := engine.LoadWorkflow(path)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	vars, _ := cmd.Flags().GetStringToString("var")
	result, err := engine.Execute(cmd.Context(), wf,
		dsl.WithDryRun(dryRun),
		dsl.WithVerbose(cfg.Verbose),
		dsl.WithVariables(vars),
	)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	if !result.Success {
		return fmt.Errorf("workflow %s failed: %s", wf.Name, result.Error)
	}
	return nil
}
