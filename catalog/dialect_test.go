package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDialects(t *testing.T) {
	registry := DefaultDialects()
	assert.Equal(t, []string{"mysql", "postgres", "sqlserver"}, registry.Names())

	d, err := registry.Get("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.DriverName())

	_, err = registry.Get("oracle")
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.Contains(t, err.Error(), "oracle")
}

func TestDialectQueries(t *testing.T) {
	tests := []struct {
		dialect     Dialect
		placeholder string
	}{
		{NewPostgresDialect(), "$1"},
		{NewMySQLDialect(), "?"},
		{NewSQLServerDialect(), "@p1"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			for _, c := range Categories() {
				query, args, err := tt.dialect.Query(c, "")
				require.NoError(t, err, "category %s", c)
				assert.Empty(t, args)
				assert.NotContains(t, query, tt.placeholder)
				assert.Contains(t, query, "ORDER BY")

				filtered, args, err := tt.dialect.Query(c, "sales")
				require.NoError(t, err)
				assert.Equal(t, []any{"sales"}, args)
				assert.Contains(t, filtered, "= "+tt.placeholder)

				// the filter must sit before any GROUP BY
				if g := strings.Index(filtered, "GROUP BY"); g >= 0 {
					assert.Less(t, strings.Index(filtered, tt.placeholder), g)
				}
			}

			_, _, err := tt.dialect.Query(Category("view"), "")
			assert.ErrorIs(t, err, ErrUnknownCategory)
		})
	}
}

func TestCatalogQueryBuild(t *testing.T) {
	q := catalogQuery{
		base:      "SELECT a FROM t WHERE true",
		schemaCol: "s",
		groupBy:   "a",
		orderBy:   "a",
	}

	query, args := q.build("", "$1")
	assert.Nil(t, args)
	assert.Equal(t, "SELECT a FROM t WHERE true\n\t\tGROUP BY a\n\t\tORDER BY a", query)

	query, args = q.build("public", "$1")
	assert.Equal(t, []any{"public"}, args)
	assert.Equal(t, "SELECT a FROM t WHERE true\n\t\tAND s = $1\n\t\tGROUP BY a\n\t\tORDER BY a", query)
}

func TestPostgresDSN(t *testing.T) {
	d := NewPostgresDialect()

	t.Run("defaults", func(t *testing.T) {
		dsn, err := d.DSN(ConnParams{Host: "db", Database: "app", User: "admin", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "postgres://admin:s3cret@db:5432/app?sslmode=disable", dsn)
	})

	t.Run("options_override_sslmode", func(t *testing.T) {
		dsn, err := d.DSN(ConnParams{
			Host: "db", Port: 6432, Database: "app", User: "admin",
			Options: map[string]string{"sslmode": "require"},
		})
		require.NoError(t, err)
		assert.Equal(t, "postgres://admin@db:6432/app?sslmode=require", dsn)
	})

	t.Run("missing_host", func(t *testing.T) {
		_, err := d.DSN(ConnParams{Database: "app"})
		assert.Error(t, err)
	})
}

func TestMySQLDSN(t *testing.T) {
	d := NewMySQLDialect()

	dsn, err := d.DSN(ConnParams{Host: "db", Database: "app", User: "root", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "root:pw@tcp(db:3306)/app"), dsn)

	_, err = d.DSN(ConnParams{Host: "db"})
	assert.Error(t, err)
}

func TestSQLServerDSN(t *testing.T) {
	d := NewSQLServerDialect()

	dsn, err := d.DSN(ConnParams{
		Host: "mssql", Database: "app", User: "sa", Password: "pw",
		Options: map[string]string{"encrypt": "disable"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sqlserver://sa:pw@mssql:1433?app+name=catdiff&database=app&encrypt=disable", dsn)
}

func TestFormatDifferences(t *testing.T) {
	desc := mustDescriptor(t, CategoryIndex)
	diffs := []Difference{
		{
			Category: CategoryIndex, State: StateUnique, Side: SideLeft,
			Schema: "public", Name: "orders_status_idx",
			Extra: []string{"orders", "create index orders_status_idx on public.orders using btree (status)"},
		},
	}

	out := FormatDifferences(desc, diffs)
	assert.Contains(t, out, "Category: index (1 records)")
	assert.Contains(t, out, "[unique/left] public.orders_status_idx (table_name=orders)")
	assert.Contains(t, out, "create index orders_status_idx")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))

	t.Run("keeps_runes_whole", func(t *testing.T) {
		// "é" is two bytes; cutting at 2 would split it
		out := truncate("aébc", 2)
		assert.Equal(t, "a...", out)
		assert.True(t, utf8.ValidString(out))
		assert.Equal(t, "aé...", truncate("aébc", 3))
	})
}
