package errors

import (
	"regexp"
	"strings"
)

// backtickPattern captures the first non-empty `quoted` span in a message.
var backtickPattern = regexp.MustCompile("`([^`]+)`")

const pathSeparator = "::"

// ExtractSymbol returns a best-effort identifier from a diagnostic message.
//
// The first backtick-quoted span is used. Qualified paths such as
// `std::vec::Vec` are reduced to their last segment. Messages without a
// quoted span yield UnknownSymbol.
func ExtractSymbol(message string) string {
	match := backtickPattern.FindStringSubmatch(message)
	if match == nil {
		return UnknownSymbol
	}
	return lastSegment(match[1])
}

// SymbolFromIdentifier derives a symbol from a test name or path.
// Quoted spans win; otherwise the last :: segment of the identifier is used.
func SymbolFromIdentifier(ident string) string {
	if sym := ExtractSymbol(ident); sym != UnknownSymbol {
		return sym
	}
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return UnknownSymbol
	}
	if sym := lastSegment(ident); sym != "" {
		return sym
	}
	return UnknownSymbol
}

func lastSegment(s string) string {
	if idx := strings.LastIndex(s, pathSeparator); idx >= 0 {
		return s[idx+len(pathSeparator):]
	}
	return s
}
