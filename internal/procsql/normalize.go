// Package procsql holds the text-level rewriting of stored procedure
// definitions. It works on regular expressions, not on a SQL parser.
//
// Known limitation: comment stripping does not understand string literals,
// so a literal such as '--' or '/* x */' inside a procedure body is removed
// before comparison as well. Two bodies differing only inside such a literal
// compare equal.
package procsql

import (
	"regexp"
	"strings"
)

var (
	createOrAlterRe = regexp.MustCompile(`(?i)\bCREATE\s+OR\s+(?:ALTER|REPLACE)\s+(?:PROC|PROCEDURE)\b`)
	createProcRe    = regexp.MustCompile(`(?i)\bCREATE\s+PROC\s+`)
	lineCommentRe   = regexp.MustCompile(`--.*`)
	blockCommentRe  = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	whitespaceRe    = regexp.MustCompile(`\s+`)

	// First creation phrase of a definition, with or without OR ALTER/REPLACE.
	creationRe = regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+(?:ALTER|REPLACE)\s+)?(?:PROC|PROCEDURE)\b`)
)

// Stripping a block comment can join the words around it into a creation
// phrase ("create /**/ proc"), so the creation rewrites are repeated on the
// stripped text until it stops changing. Comments are stripped only once.
const maxPasses = 4

// Normalize maps a procedure definition to the form used for equality.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(def string) string {
	s := canonicalize(def)
	for i := 1; i < maxPasses; i++ {
		next := strings.ToLower(rewriteCreate(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// canonicalize runs the pipeline once. The steps run in a fixed order,
// each one feeding the next. Block comments become a space so that
// removing one never joins its neighbours into a new comment marker.
func canonicalize(def string) string {
	if def == "" {
		return ""
	}

	s := rewriteCreate(def)
	s = lineCommentRe.ReplaceAllString(s, "")
	s = blockCommentRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.ToLower(strings.TrimSpace(s))
}

func rewriteCreate(s string) string {
	s = createOrAlterRe.ReplaceAllString(s, "CREATE PROCEDURE")
	return createProcRe.ReplaceAllString(s, "CREATE PROCEDURE ")
}

// Equal reports whether two definitions differ only cosmetically.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// RewriteFirstCreate replaces only the first creation phrase of def with
// phrase, e.g. "CREATE OR ALTER PROCEDURE". Later occurrences (in literals,
// comments or dynamic SQL) are left alone. def is returned unchanged when
// it has no creation phrase.
func RewriteFirstCreate(def, phrase string) string {
	loc := creationRe.FindStringIndex(def)
	if loc == nil {
		return def
	}
	return def[:loc[0]] + phrase + def[loc[1]:]
}

// SafeFileName makes a procedure name usable as a file name by replacing
// path separators.
func SafeFileName(name string) string {
	return strings.NewReplacer(`\`, "_", "/", "_").Replace(name)
}
