package catalog

import (
	"fmt"
	"strings"
)

// catalogQuery is a dialect query split around its optional schema filter.
type catalogQuery struct {
	// base is the SELECT ... WHERE part; it always ends inside a WHERE clause
	base string
	// schemaCol is compared with the schema filter
	schemaCol string
	// groupBy is appended after the filter when the query aggregates
	groupBy string
	orderBy string
}

// build renders the query with the given placeholder for the schema argument.
func (q catalogQuery) build(schema, placeholder string) (string, []any) {
	var sb strings.Builder
	sb.WriteString(q.base)

	var args []any
	if schema != "" {
		fmt.Fprintf(&sb, "\n\t\tAND %s = %s", q.schemaCol, placeholder)
		args = append(args, schema)
	}
	if q.groupBy != "" {
		sb.WriteString("\n\t\tGROUP BY " + q.groupBy)
	}
	if q.orderBy != "" {
		sb.WriteString("\n\t\tORDER BY " + q.orderBy)
	}

	return sb.String(), args
}

func lookupQuery(queries map[Category]catalogQuery, category Category, schema, placeholder string) (string, []any, error) {
	q, ok := queries[category]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	query, args := q.build(schema, placeholder)
	return query, args, nil
}
