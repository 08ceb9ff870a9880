package extract

import (
	"math"

	"github.com/detent/triage/internal/errors"
	"github.com/tidwall/gjson"
)

const reasonCompilerMessage = "compiler-message"

// outcome is what the normalizer decided for one raw record.
type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeNotError
	outcomeUnrecognized
	outcomeFiltered
)

// NormalizeStats counts normalizer decisions for one run.
type NormalizeStats struct {
	Build        int
	Test         int
	NotError     int // diagnostics whose level does not contain "error"
	Unrecognized int // records matching no known shape
	Filtered     int // records rejected by the path filter
}

// Normalizer maps raw diagnostic records onto the canonical error record.
//
// Three record shapes are recognized, checked in order:
//   - cargo envelopes: {"reason": "compiler-message", "message": {...}}
//   - flattened diagnostics: {"message": ..., "code": ..., "level": ..., "spans": [...]}
//   - test results: {"test_name" | "test_path": ..., "file": ..., "line": ...}
//
// Anything else is dropped without being reported as an error.
type Normalizer struct {
	filter *PathFilter
}

// NewNormalizer creates a normalizer. A nil filter accepts every record.
func NewNormalizer(filter *PathFilter) *Normalizer {
	return &Normalizer{filter: filter}
}

// Normalize converts one raw record. The second return value is false when
// the record is not an error, is not a recognized shape, or is filtered out.
func (n *Normalizer) Normalize(rec gjson.Result) (*errors.ExtractedError, bool) {
	err, out := n.classify(rec)
	return err, out == outcomeAccepted
}

// NormalizeAll converts every record, preserving input order.
func (n *Normalizer) NormalizeAll(records []gjson.Result) ([]*errors.ExtractedError, NormalizeStats) {
	var stats NormalizeStats
	extracted := make([]*errors.ExtractedError, 0, len(records))

	for _, rec := range records {
		err, out := n.classify(rec)
		switch out {
		case outcomeAccepted:
			if err.Type == errors.TypeTest {
				stats.Test++
			} else {
				stats.Build++
			}
			extracted = append(extracted, err)
		case outcomeNotError:
			stats.NotError++
		case outcomeFiltered:
			stats.Filtered++
		default:
			stats.Unrecognized++
		}
	}

	return extracted, stats
}

func (n *Normalizer) classify(rec gjson.Result) (*errors.ExtractedError, outcome) {
	if !rec.IsObject() {
		return nil, outcomeUnrecognized
	}

	var (
		found   *errors.ExtractedError
		isError bool
	)

	switch {
	case isCompilerMessage(rec):
		found, isError = fromDiagnostic(field(rec, "message"))
	case field(rec, "message").Exists() && (field(rec, "code").Exists() || field(rec, "level").Exists()):
		found, isError = fromDiagnostic(rec)
	case field(rec, "test_name").Exists() || field(rec, "test_path").Exists():
		found, isError = fromTestResult(rec), true
	default:
		return nil, outcomeUnrecognized
	}

	if !isError {
		return nil, outcomeNotError
	}
	if !n.filter.Match(found.File) {
		return nil, outcomeFiltered
	}
	return found, outcomeAccepted
}

func isCompilerMessage(rec gjson.Result) bool {
	reason := field(rec, "reason")
	return reason.Type == gjson.String &&
		reason.Str == reasonCompilerMessage &&
		field(rec, "message").IsObject()
}

// fromDiagnostic builds a build error from a compiler diagnostic object and
// reports whether its level marks it as an error.
func fromDiagnostic(diag gjson.Result) (*errors.ExtractedError, bool) {
	text := textOf(field(diag, "message"))
	file, line := primarySpan(field(diag, "spans"))

	found := &errors.ExtractedError{
		Type:    errors.TypeBuild,
		Message: text,
		Code:    resolveCode(field(diag, "code")),
		File:    file,
		Line:    line,
		Symbol:  errors.ExtractSymbol(text),
	}

	return found, isErrorLevel(field(diag, "level"))
}

// isErrorLevel applies the level rule to a level value. A string matches on
// substring, a list when it holds the exact string "error", and an object
// when it has an "error" key. Other values never match.
func isErrorLevel(level gjson.Result) bool {
	switch {
	case level.Type == gjson.String:
		return errors.IsErrorLevel(level.Str)
	case level.IsArray():
		for _, item := range level.Array() {
			if item.Type == gjson.String && item.Str == errors.LevelError {
				return true
			}
		}
		return false
	case level.IsObject():
		return field(level, errors.LevelError).Exists()
	default:
		return false
	}
}

func fromTestResult(rec gjson.Result) *errors.ExtractedError {
	ident := textOf(field(rec, "test_name"))
	if ident == "" {
		ident = textOf(field(rec, "test_path"))
	}

	return &errors.ExtractedError{
		Type:    errors.TypeTest,
		Message: "Test failed: " + ident,
		Code:    errors.TestFailureCode,
		File:    stringOf(field(rec, "file")),
		Line:    intOf(field(rec, "line")),
		Symbol:  errors.SymbolFromIdentifier(ident),
	}
}

// resolveCode accepts both the cargo form {"code": "E0308", "explanation": ...}
// and a bare string.
func resolveCode(code gjson.Result) string {
	switch {
	case code.IsObject():
		if inner := field(code, "code"); inner.Type == gjson.String {
			return inner.Str
		}
		return errors.UnknownCode
	case code.Type == gjson.String:
		return code.Str
	default:
		return errors.UnknownCode
	}
}

// primarySpan returns the location of the first span whose is_primary is
// truthy, or of the first span when none is.
func primarySpan(spans gjson.Result) (*string, *int) {
	if !spans.IsArray() {
		return nil, nil
	}
	items := spans.Array()
	if len(items) == 0 {
		return nil, nil
	}

	span := items[0]
	for _, s := range items {
		if s.IsObject() && truthy(field(s, "is_primary")) {
			span = s
			break
		}
	}
	if !span.IsObject() {
		return nil, nil
	}

	return stringOf(field(span, "file_name")), intOf(field(span, "line_start"))
}

// textOf renders a message value as text. Non-string values keep their
// raw JSON form so the record is not lost.
func textOf(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

func stringOf(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

// intOf returns integral numbers that fit in an int.
func intOf(v gjson.Result) *int {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return nil
	}
	if v.Num < math.MinInt || v.Num >= -math.MinInt {
		return nil
	}
	n := int(v.Int())
	return &n
}

// field returns the value stored under key in obj. When a key repeats, the
// last occurrence wins.
func field(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}

// truthy reports whether v is a set flag: true, a non-zero number, or a
// non-empty string, array or object.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		if v.IsArray() {
			return len(v.Array()) > 0
		}
		return len(v.Map()) > 0
	default:
		return false
	}
}
