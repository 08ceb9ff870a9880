package output

import (
	"fmt"
	"io"

	"github.com/detent/triage/internal/errors"
	"github.com/goccy/go-yaml"
)

// FormatYAML writes the result document as YAML with the same field names
// as the JSON form.
func FormatYAML(w io.Writer, result *errors.Result) error {
	encoder := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}
