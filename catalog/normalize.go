package catalog

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)--.*$`)
)

// NormalizeDefinition canonicalizes free-text SQL so that definitions which
// only differ in comments, whitespace or letter case compare equal.
//
// Block comments (/* ... */) and line comments (-- to end of line) are removed
// until none are left, whitespace runs collapse to one space, the result is
// trimmed and lowercased. Malformed input such as an unterminated block
// comment is kept as text.
func NormalizeDefinition(text string) string {
	if text == "" {
		return ""
	}

	// Removing one comment can join the halves of another, e.g. "//**/* x */".
	for {
		stripped := blockCommentRe.ReplaceAllString(text, "")
		stripped = lineCommentRe.ReplaceAllString(stripped, "")
		if stripped == text {
			break
		}
		text = stripped
	}

	// strings.Fields splits on every Unicode space, including \v and NBSP.
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// normalizeObject rewrites the definition fields of obj in place.
func normalizeObject(obj Object, fields []string) {
	for _, field := range fields {
		if v, ok := obj[field]; ok {
			obj[field] = NormalizeDefinition(v)
		}
	}
}
