package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath string
	leftName   string
	rightName  string
	schemaName string
	outputDir  string
	format     string
	timeout    time.Duration
	parallel   int
	strictMode bool
	mcpMode    bool
	verbose    bool

	logLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "catdiff",
	Short: "Report structural drift between two database catalogs",
	Long: `catdiff reads the catalogs of two databases (tables, columns, indexes,
functions, procedures and triggers) and writes one report per object type
listing what exists on one side only and what differs between the sides.

Catalogs are named in the configuration file (catdiff.yaml by default).
When --left or --right is missing the names are asked for interactively.

Modes:
  compare mode (default): writes reports and prints a summary
  mcp mode (--mcp): runs as a Model Context Protocol server`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCatdiff,
}

func main() {
	if err := run(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	registerFlags(rootCmd)

	return rootCmd.Execute()
}

func registerFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("config") != nil {
		return
	}
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", DefaultConfigFile, "Configuration file declaring the catalogs")
	flags.StringVar(&leftName, "left", "", "Name of the first catalog")
	flags.StringVar(&rightName, "right", "", "Name of the second catalog")
	flags.StringVar(&schemaName, "schema", "", "Only compare this schema (default: all schemas)")
	flags.StringVarP(&outputDir, "out", "o", "", "Report directory (overrides output.dir)")
	flags.StringVar(&format, "format", "", "Report format: csv or json (overrides output.format)")
	flags.DurationVar(&timeout, "timeout", 0, "Per-category timeout (overrides timeout)")
	flags.IntVar(&parallel, "parallel", 0, "Categories compared at once (overrides parallel)")
	flags.BoolVar(&strictMode, "strict", false, "Exit with status 1 when any category fails")
	flags.BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func runCatdiff(cmd *cobra.Command, _ []string) error {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if mcpMode {
		slog.Info("starting mcp server")
		return StartMCPServer(cfg)
	}

	sel := Selection{Left: leftName, Right: rightName, Schema: schemaName}
	if !sel.Complete() {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--left and --right are required when stdin is not a terminal")
		}
		sel, err = NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Complete(sel, cfg.CatalogNames())
		if err != nil {
			return err
		}
	}

	writer, err := NewReportWriter(cfg)
	if err != nil {
		return err
	}

	return compareCatalogs(cmd.Context(), cfg, sel, NewSQLCatalogOpener(cfg), writer, cmd.OutOrStdout(), strictMode)
}

// loadConfig reads the configuration file and applies the flags that override it
func loadConfig(cmd *cobra.Command) (*Config, error) {
	cfg, err := LoadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}
	return cfg, nil
}

func compareCatalogs(ctx context.Context, cfg *Config, sel Selection, opener CatalogOpener, writer ReportWriter, out io.Writer, strict bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	orchestrator := NewOrchestrator(RunConfig{
		Left:      sel.Left,
		Right:     sel.Right,
		Schema:    sel.Schema,
		OutputDir: cfg.Output.Dir,
		Timeout:   cfg.Timeout,
		Parallel:  cfg.Parallel,
	}, opener, writer)

	summary, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	if err := WriteSummary(out, summary); err != nil {
		return err
	}

	if ExitCode(summary, strict) != 0 {
		return fmt.Errorf("%d categories failed: %w", len(summary.Failed()), summary.Err())
	}
	return nil
}
