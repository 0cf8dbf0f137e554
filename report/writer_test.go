package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/alc6/catdiff/catalog"
)

func readReport(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestCSVWriter(t *testing.T) {
	t.Run("side_labels", func(t *testing.T) {
		w, err := New("csv", WithSideLabels("preprod", "prod"))
		require.NoError(t, err)

		diffs := []catalog.Difference{
			{Category: catalog.CategoryColumn, State: catalog.StateUnique, Side: catalog.SideLeft,
				Schema: "public", Name: "legacy", Extra: []string{"orders", "text", "YES", ""}},
			{Category: catalog.CategoryColumn, State: catalog.StateDifference, Side: catalog.SideLeft,
				Schema: "public", Name: "status", Extra: []string{"orders", "text", "YES", "'new'::text"}},
			{Category: catalog.CategoryColumn, State: catalog.StateDifference, Side: catalog.SideRight,
				Schema: "public", Name: "status", Extra: []string{"orders", "text", "NO", "'new'::text"}},
		}

		dir := t.TempDir()
		path, err := w.Write(catalog.CategoryColumn, diffs, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "column_differences.csv"), path)

		golden.Assert(t, readReport(t, path), "columns_labels.csv.golden")
	})

	t.Run("french_headers", func(t *testing.T) {
		w, err := New("", WithHeaders(FrenchHeaders))
		require.NoError(t, err)

		diffs := []catalog.Difference{
			{Category: catalog.CategoryIndex, State: catalog.StateUnique, Side: catalog.SideLeft,
				Schema: "public", Name: "orders_status_idx",
				Extra: []string{"orders", "create index orders_status_idx on public.orders using btree (status, id)"}},
		}

		path, err := w.Write(catalog.CategoryIndex, diffs, t.TempDir())
		require.NoError(t, err)

		golden.Assert(t, readReport(t, path), "index_french.csv.golden")
	})

	t.Run("short_extra_is_padded", func(t *testing.T) {
		w, err := New("csv")
		require.NoError(t, err)

		diffs := []catalog.Difference{
			{Category: catalog.CategoryTrigger, State: catalog.StateUnique, Side: catalog.SideRight,
				Schema: "public", Name: "t1"},
		}

		path, err := w.Write(catalog.CategoryTrigger, diffs, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t,
			"object_type,state,side,schema,identifying_name,table_name,definition\n"+
				"trigger,unique,right,public,t1,,\n",
			readReport(t, path))
	})
}

func TestJSONWriter(t *testing.T) {
	w, err := New("json")
	require.NoError(t, err)

	t.Run("keys_in_header_order", func(t *testing.T) {
		diffs := []catalog.Difference{
			{Category: catalog.CategoryFunction, State: catalog.StateUnique, Side: catalog.SideRight,
				Schema: "public", Name: "total",
				Extra: []string{"integer", "create function public.total(integer) returns integer language sql as $$ select 1 $$"}},
		}

		path, err := w.Write(catalog.CategoryFunction, diffs, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "function_differences.json", filepath.Base(path))

		golden.Assert(t, readReport(t, path), "function.json.golden")
	})

	t.Run("empty_list", func(t *testing.T) {
		path, err := w.Write(catalog.CategoryTable, nil, t.TempDir())
		require.NoError(t, err)

		golden.Assert(t, readReport(t, path), "table_empty.json.golden")
	})
}

func TestWriteErrors(t *testing.T) {
	w, err := New("csv")
	require.NoError(t, err)

	t.Run("missing_directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "does", "not", "exist")
		_, err := w.Write(catalog.CategoryTable, nil, dir)
		require.Error(t, err)

		var we *WriteError
		require.True(t, errors.As(err, &we))
		assert.Equal(t, catalog.CategoryTable, we.Category)
		assert.Equal(t, filepath.Join(dir, "table_differences.csv"), we.Path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown_category", func(t *testing.T) {
		_, err := w.Write(catalog.Category("view"), nil, t.TempDir())
		assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    Writer
		wantErr bool
	}{
		{format: "", want: &CSVWriter{}},
		{format: "csv", want: &CSVWriter{}},
		{format: "json", want: &JSONWriter{}},
		{format: "xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			w, err := New(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, w)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "procedure_differences.csv", FileName(catalog.CategoryProcedure, FormatCSV))
	assert.Equal(t, "index_differences.json", FileName(catalog.CategoryIndex, FormatJSON))
}
