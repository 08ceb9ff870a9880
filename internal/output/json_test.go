package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/detent/triage/internal/errors"
)

func sampleResult() *errors.Result {
	file := "src/lib.rs"
	line := 42
	errs := []*errors.ExtractedError{
		{Type: errors.TypeBuild, Message: "mismatched types: expected `Foo::Bar`, found `Vec<i32>`", Code: "E0308", File: &file, Line: &line, Symbol: "Bar"},
		{Type: errors.TypeBuild, Message: "mismatched types again", Code: "E0308", Symbol: "Bar"},
		{Type: errors.TypeTest, Message: "Test failed: suite::case", Code: errors.TestFailureCode, Symbol: "case"},
	}
	return errors.NewResult(errs, errors.GroupByCode(errs, 10))
}

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name     string
		result   *errors.Result
		validate func(t *testing.T, output string)
	}{
		{
			name:   "empty result",
			result: errors.NewResult(nil, nil),
			validate: func(t *testing.T, output string) {
				want := "{\n  \"total_errors\": 0,\n  \"total_groups\": 0,\n  \"error_groups\": []\n}\n"
				if output != want {
					t.Errorf("FormatJSON() = %q, want %q", output, want)
				}
			},
		},
		{
			name:   "groups round-trip",
			result: sampleResult(),
			validate: func(t *testing.T, output string) {
				var decoded errors.Result
				if err := json.Unmarshal([]byte(output), &decoded); err != nil {
					t.Fatalf("failed to unmarshal JSON: %v", err)
				}
				if decoded.TotalErrors != 3 {
					t.Errorf("TotalErrors = %d, want 3", decoded.TotalErrors)
				}
				if decoded.TotalGroups != 2 {
					t.Fatalf("TotalGroups = %d, want 2", decoded.TotalGroups)
				}
				first := decoded.ErrorGroups[0]
				if first.ErrorCode != "E0308" || first.Symbol != "Bar" || first.Count != 2 {
					t.Errorf("first group = %s/%s:%d, want E0308/Bar:2", first.ErrorCode, first.Symbol, first.Count)
				}
				if first.Errors[0].File == nil || *first.Errors[0].File != "src/lib.rs" {
					t.Errorf("first error file = %v, want src/lib.rs", first.Errors[0].File)
				}
				if first.Errors[1].File != nil || first.Errors[1].Line != nil {
					t.Errorf("second error location = (%v, %v), want nulls", first.Errors[1].File, first.Errors[1].Line)
				}
			},
		},
		{
			name:   "two-space indent and null locations",
			result: sampleResult(),
			validate: func(t *testing.T, output string) {
				if !strings.Contains(output, "\n  \"total_errors\": 3,") {
					t.Errorf("output lacks two-space indented total_errors:\n%s", output)
				}
				if !strings.Contains(output, `"file": null`) || !strings.Contains(output, `"line": null`) {
					t.Errorf("output lacks null file/line:\n%s", output)
				}
			},
		},
		{
			name:   "HTML characters are not escaped",
			result: sampleResult(),
			validate: func(t *testing.T, output string) {
				if !strings.Contains(output, "Vec<i32>") {
					t.Errorf("output escaped angle brackets:\n%s", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatJSON(&buf, tt.result); err != nil {
				t.Fatalf("FormatJSON() error = %v", err)
			}
			tt.validate(t, buf.String())
		})
	}
}

func TestFormatJSON_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}
	out := buf.String()

	order := []string{`"total_errors"`, `"total_groups"`, `"error_groups"`, `"error_code"`, `"symbol"`, `"count"`, `"errors"`, `"type"`, `"message"`, `"code"`, `"file"`, `"line"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx < 0 {
			t.Fatalf("output missing %s", key)
		}
		if idx < last {
			t.Errorf("%s appears before the preceding key", key)
		}
		last = idx
	}
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatError(&buf, "Failed to read JSON file: open x.json: no such file or directory"); err != nil {
		t.Fatalf("FormatError() error = %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Errorf("decoded = %v, want exactly one key", decoded)
	}
	if !strings.HasPrefix(decoded["error"], "Failed to read JSON file") {
		t.Errorf("error = %q", decoded["error"])
	}
}
