package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StartMCPServer serves the catalog comparison as MCP tools over stdio
func StartMCPServer(cfg *Config) error {
	s := server.NewMCPServer(
		"catdiff",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	listCatalogsTool := mcp.NewTool("list_catalogs",
		mcp.WithDescription("List the catalogs declared in the catdiff configuration"),
	)

	s.AddTool(listCatalogsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListCatalogs(cfg)
	})

	compareCatalogsTool := mcp.NewTool("compare_catalogs",
		mcp.WithDescription("Compare two database catalogs and write one difference report per object type"),
		mcp.WithString("left",
			mcp.Required(),
			mcp.Description("Name of the first catalog, as listed by list_catalogs"),
		),
		mcp.WithString("right",
			mcp.Required(),
			mcp.Description("Name of the second catalog, as listed by list_catalogs"),
		),
		mcp.WithString("schema",
			mcp.Description("Only compare this schema (default: all schemas)"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Report directory (default: output.dir from the configuration)"),
		),
	)

	s.AddTool(compareCatalogsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCompareCatalogs(ctx, cfg, NewSQLCatalogOpener(cfg), request)
	})

	slog.Info("starting catdiff mcp server")
	return server.ServeStdio(s)
}

func handleListCatalogs(cfg *Config) (*mcp.CallToolResult, error) {
	output, err := listCatalogsCore(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output), nil
}

// listCatalogsCore renders the configured catalogs without their credentials
func listCatalogsCore(cfg *Config) (string, error) {
	type catalogInfo struct {
		Name     string `json:"name"`
		Dialect  string `json:"dialect"`
		Host     string `json:"host"`
		Database string `json:"database"`
	}

	catalogs := make([]catalogInfo, 0, len(cfg.Catalogs))
	for _, name := range cfg.CatalogNames() {
		c := cfg.Catalogs[name]
		catalogs = append(catalogs, catalogInfo{
			Name:     name,
			Dialect:  c.Dialect,
			Host:     c.Host,
			Database: c.Database,
		})
	}

	jsonOutput, err := json.MarshalIndent(map[string]any{"catalogs": catalogs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal catalogs to JSON: %w", err)
	}
	return string(jsonOutput), nil
}

func handleCompareCatalogs(ctx context.Context, cfg *Config, opener CatalogOpener, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	left, err := request.RequireString("left")
	if err != nil {
		return mcp.NewToolResultError("left parameter is required"), nil
	}
	right, err := request.RequireString("right")
	if err != nil {
		return mcp.NewToolResultError("right parameter is required"), nil
	}

	sel := Selection{
		Left:   left,
		Right:  right,
		Schema: request.GetString("schema", ""),
	}
	outDir := request.GetString("output_dir", cfg.Output.Dir)

	writer, err := NewReportWriter(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := compareCatalogsCore(ctx, cfg, sel, outDir, opener, writer)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

// compareCatalogsCore runs one comparison and renders its summary and differences
func compareCatalogsCore(ctx context.Context, cfg *Config, sel Selection, outDir string, opener CatalogOpener, writer ReportWriter) (string, error) {
	for _, name := range []string{sel.Left, sel.Right} {
		if _, ok := cfg.Catalogs[name]; !ok {
			return "", fmt.Errorf("unknown catalog %q", name)
		}
	}

	summary, err := NewOrchestrator(RunConfig{
		Left:      sel.Left,
		Right:     sel.Right,
		Schema:    sel.Schema,
		OutputDir: outDir,
		Timeout:   cfg.Timeout,
		Parallel:  cfg.Parallel,
	}, opener, writer).Run(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("comparison completed:\n%s", FormatRunDetails(summary)), nil
}
