package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SQLReader reads catalog objects through database/sql using a dialect's queries.
type SQLReader struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewSQLReader creates a reader over an open database handle
func NewSQLReader(db *sql.DB, dialect Dialect) *SQLReader {
	return &SQLReader{DB: db, Dialect: dialect}
}

// Fetch runs the dialect query for category and returns one Object per row.
// This is the only place definition fields are normalized.
func (r *SQLReader) Fetch(ctx context.Context, category Category, schema string) ([]Object, error) {
	if r.DB == nil {
		return nil, fmt.Errorf("%s reader requires database connection", r.Dialect.Name())
	}

	desc, err := DescriptorFor(category)
	if err != nil {
		return nil, err
	}

	query, args, err := r.Dialect.Query(category, schema)
	if err != nil {
		return nil, err
	}

	slog.Debug("querying catalog", "dialect", r.Dialect.Name(), "category", category, "schema", schema, "query", query)
	start := time.Now()

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", category, err)
	}
	defer rows.Close()

	objects, err := scanObjects(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", category, err)
	}

	for _, obj := range objects {
		normalizeObject(obj, desc.DefinitionFields)
	}

	slog.Debug("fetched catalog objects", "category", category, "count", len(objects), "duration", time.Since(start))
	return objects, nil
}

func scanObjects(rows *sql.Rows) ([]Object, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i, c := range columns {
		columns[i] = strings.ToLower(c)
	}

	var objects []Object
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		obj := make(Object, len(columns))
		for i, c := range columns {
			obj[c] = stringValue(values[i])
		}
		objects = append(objects, obj)
	}

	return objects, rows.Err()
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
