package output

import (
	"encoding/json"
	"io"

	"github.com/detent/triage/internal/errors"
)

// FormatJSON writes the result document as pretty-printed JSON with a
// two-space indent. This is the machine contract consumed by agents.
func FormatJSON(w io.Writer, result *errors.Result) error {
	return encodeJSON(w, result)
}

// errorDocument is the payload written when a run fails.
type errorDocument struct {
	Error string `json:"error"`
}

// FormatError writes {"error": message} as pretty-printed JSON.
func FormatError(w io.Writer, message string) error {
	return encodeJSON(w, errorDocument{Error: message})
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
