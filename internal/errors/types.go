package errors

import "strconv"

// ErrorType classifies where a diagnostic came from.
type ErrorType string

const (
	TypeBuild ErrorType = "build"
	TypeTest  ErrorType = "test"
)

const (
	// UnknownCode is used when a diagnostic carries no usable classification code.
	UnknownCode = "unknown"
	// UnknownSymbol is used when no identifier can be recovered from a message.
	UnknownSymbol = "unknown"
	// TestFailureCode is the fixed code assigned to failed test records.
	TestFailureCode = "test_failure"
)

// ExtractedError is the canonical form of one diagnostic record.
// File and Line are nil when the diagnostic has no source location.
type ExtractedError struct {
	Type    ErrorType `json:"type" yaml:"type"`
	Message string    `json:"message" yaml:"message"`
	Code    string    `json:"code" yaml:"code"`
	File    *string   `json:"file" yaml:"file"`
	Line    *int      `json:"line" yaml:"line"`
	Symbol  string    `json:"symbol" yaml:"symbol"`
}

// Location formats the source location as "file:line", "file", or "".
func (e *ExtractedError) Location() string {
	if e.File == nil {
		return ""
	}
	if e.Line == nil {
		return *e.File
	}
	return *e.File + ":" + strconv.Itoa(*e.Line)
}

// Group holds the errors that share a code and symbol.
type Group struct {
	ErrorCode string            `json:"error_code" yaml:"error_code"`
	Symbol    string            `json:"symbol" yaml:"symbol"`
	Count     int               `json:"count" yaml:"count"`
	Errors    []*ExtractedError `json:"errors" yaml:"errors"`
}

// Result is the document emitted for one run.
type Result struct {
	TotalErrors int      `json:"total_errors" yaml:"total_errors"`
	TotalGroups int      `json:"total_groups" yaml:"total_groups"`
	ErrorGroups []*Group `json:"error_groups" yaml:"error_groups"`
}

// NewResult builds the output document from the full error list and its groups.
// ErrorGroups is never nil so it serializes as an empty array.
func NewResult(errs []*ExtractedError, groups []*Group) *Result {
	if groups == nil {
		groups = []*Group{}
	}
	return &Result{
		TotalErrors: len(errs),
		TotalGroups: len(groups),
		ErrorGroups: groups,
	}
}
