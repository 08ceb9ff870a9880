package errors

import "strings"

// LevelError is the marker that makes a diagnostic level count as an error.
const LevelError = "error"

// IsErrorLevel reports whether a diagnostic level denotes an error.
//
// Matching is a case-sensitive substring test, so "error" and
// "error: internal compiler error" qualify while "warning", "note" and
// "ERROR" do not.
func IsErrorLevel(level string) bool {
	return strings.Contains(level, LevelError)
}
