package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatDifferences formats difference records as human-readable text
func FormatDifferences(desc Descriptor, diffs []Difference) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Category: %s (%d records)\n", desc.Category, len(diffs)))
	for _, d := range diffs {
		sb.WriteString(fmt.Sprintf("  - [%s/%s] %s", d.State, d.Side, qualifiedName(d)))

		var extras []string
		for i, field := range desc.ExtraFields {
			if i >= len(d.Extra) || d.Extra[i] == "" || field == "definition" {
				continue
			}
			extras = append(extras, fmt.Sprintf("%s=%s", field, d.Extra[i]))
		}
		if len(extras) > 0 {
			sb.WriteString(" (" + strings.Join(extras, ", ") + ")")
		}
		sb.WriteString("\n")

		if def := d.Field(desc, "definition"); def != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", truncate(def, 120)))
		}
	}

	return sb.String()
}

func qualifiedName(d Difference) string {
	if d.Schema == "" {
		return d.Name
	}
	return d.Schema + "." + d.Name
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
