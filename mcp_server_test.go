package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListCatalogsCore(t *testing.T) {
	output, err := listCatalogsCore(testConfig(t.TempDir()))
	require.NoError(t, err)

	assert.Contains(t, output, `"name": "PG-DWH"`)
	assert.Contains(t, output, `"dialect": "postgres"`)
	assert.NotContains(t, output, "secret")
	assert.Less(t, strings.Index(output, "PG-DWH"), strings.Index(output, "PG-TEST"))
}

func TestHandleListCatalogs(t *testing.T) {
	result, err := handleListCatalogs(testConfig(t.TempDir()))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "PG-TEST")
}

func TestCompareCatalogsCore(t *testing.T) {
	ctx := context.Background()

	t.Run("reports_differences", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		left, right := driftFixture()
		opener := OpenerFor(map[string]CatalogConn{"PG-TEST": left, "PG-DWH": right})
		writer, err := NewReportWriter(cfg)
		require.NoError(t, err)

		outDir := filepath.Join(t.TempDir(), "mcp")
		output, err := compareCatalogsCore(ctx, cfg, Selection{Left: "PG-TEST", Right: "PG-DWH"}, outDir, opener, writer)
		require.NoError(t, err)

		assert.Contains(t, output, "comparison completed")
		assert.Contains(t, output, "[unique/left] public.legacy")
		assert.Contains(t, output, "[difference/right] public.status (table_name=orders, data_type=text, is_nullable=NO)")
		assert.FileExists(t, filepath.Join(outDir, "column_differences.csv"))
	})

	t.Run("output_dir_keeps_unrelated_files", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		left, right := driftFixture()
		opener := OpenerFor(map[string]CatalogConn{"PG-TEST": left, "PG-DWH": right})
		writer, err := NewReportWriter(cfg)
		require.NoError(t, err)

		workDir := t.TempDir()
		configFile := filepath.Join(workDir, "catdiff.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("catalogs: {}"), 0644))

		_, err = compareCatalogsCore(ctx, cfg, Selection{Left: "PG-TEST", Right: "PG-DWH"}, workDir, opener, writer)
		require.NoError(t, err)
		assert.FileExists(t, configFile)
		assert.FileExists(t, filepath.Join(workDir, "table_differences.csv"))
	})

	t.Run("unknown_catalog", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		opener := &MockCatalogOpener{}

		_, err := compareCatalogsCore(ctx, cfg, Selection{Left: "PG-TEST", Right: "PG-PROD"}, cfg.Output.Dir, opener, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown catalog "PG-PROD"`)
		assert.Empty(t, opener.Opened)
	})
}

func TestHandleCompareCatalogs(t *testing.T) {
	ctx := context.Background()

	t.Run("missing_left", func(t *testing.T) {
		result, err := handleCompareCatalogs(ctx, testConfig(t.TempDir()), &MockCatalogOpener{},
			toolRequest(map[string]any{"right": "PG-DWH"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "left parameter is required")
	})

	t.Run("missing_right", func(t *testing.T) {
		result, err := handleCompareCatalogs(ctx, testConfig(t.TempDir()), &MockCatalogOpener{},
			toolRequest(map[string]any{"left": "PG-TEST"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "right parameter is required")
	})

	t.Run("schema_and_output_dir", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		left, right := driftFixture()
		opener := OpenerFor(map[string]CatalogConn{"PG-TEST": left, "PG-DWH": right})
		outDir := t.TempDir()

		result, err := handleCompareCatalogs(ctx, cfg, opener, toolRequest(map[string]any{
			"left":       "PG-TEST",
			"right":      "PG-DWH",
			"schema":     "archive",
			"output_dir": outDir,
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		text := resultText(t, result)
		assert.Contains(t, text, "schema archive")
		assert.NotContains(t, text, "Category: table")
		assert.NoFileExists(t, filepath.Join(outDir, "table_differences.csv"))
	})

	t.Run("connection_failure_is_reported_in_summary", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		opener := OpenerFor(map[string]CatalogConn{})

		result, err := handleCompareCatalogs(ctx, cfg, opener, toolRequest(map[string]any{
			"left":  "PG-TEST",
			"right": "PG-DWH",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), "6 of 6 categories failed")
	})
}
