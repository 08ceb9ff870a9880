package errors

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestExtractedError_Location(t *testing.T) {
	tests := []struct {
		name string
		err  *ExtractedError
		want string
	}{
		{"file and line", &ExtractedError{File: strPtr("src/lib.rs"), Line: intPtr(12)}, "src/lib.rs:12"},
		{"file only", &ExtractedError{File: strPtr("src/lib.rs")}, "src/lib.rs"},
		{"line without file", &ExtractedError{Line: intPtr(3)}, ""},
		{"no location", &ExtractedError{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Location(); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractedError_JSONNullLocation(t *testing.T) {
	err := &ExtractedError{
		Type:    TypeBuild,
		Message: "x",
		Code:    "E0308",
		Symbol:  UnknownSymbol,
	}

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("json.Marshal() error = %v", marshalErr)
	}

	want := `{"type":"build","message":"x","code":"E0308","file":null,"line":null,"symbol":"unknown"}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
}

func TestNewResult(t *testing.T) {
	t.Run("nil groups serialize as empty array", func(t *testing.T) {
		result := NewResult(nil, nil)

		data, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if !strings.Contains(string(data), `"error_groups":[]`) {
			t.Errorf("json.Marshal() = %s, want empty error_groups array", data)
		}
		if result.TotalErrors != 0 || result.TotalGroups != 0 {
			t.Errorf("totals = (%d, %d), want (0, 0)", result.TotalErrors, result.TotalGroups)
		}
	})

	t.Run("totals count all errors, not only grouped ones", func(t *testing.T) {
		errs := []*ExtractedError{
			{Code: "E1", Symbol: "a"},
			{Code: "E1", Symbol: "a"},
			{Code: "E1", Symbol: "a"},
		}
		groups := GroupByCode(errs, 2)
		result := NewResult(errs, groups)

		if result.TotalErrors != 3 {
			t.Errorf("TotalErrors = %d, want 3", result.TotalErrors)
		}
		if result.TotalGroups != 1 {
			t.Errorf("TotalGroups = %d, want 1", result.TotalGroups)
		}
	})
}
