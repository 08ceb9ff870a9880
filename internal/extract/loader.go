package extract

import (
	"bytes"
	"os"

	"github.com/tidwall/gjson"
)

// LoadMode records which parse path produced the candidate records.
type LoadMode string

const (
	ModeEmpty    LoadMode = "empty"
	ModeDocument LoadMode = "document"
	ModeNDJSON   LoadMode = "ndjson"
)

// LoadStats describes how an input document was read.
type LoadStats struct {
	Mode         LoadMode
	Candidates   int // values found before the object check
	Records      int // objects handed to the normalizer
	NonObjects   int // values discarded because they were not objects
	InvalidLines int // NDJSON lines that failed to parse
}

// ReadError is returned when the input file cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return "Failed to read JSON file: " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Load reads the file at path and returns the raw diagnostic records it holds.
func Load(path string) ([]gjson.Result, LoadStats, error) {
	content, err := os.ReadFile(path) // #nosec G304 - reading the user-supplied input file is the purpose
	if err != nil {
		return nil, LoadStats{}, &ReadError{Path: path, Err: err}
	}
	records, stats := Parse(content)
	return records, stats, nil
}

// Parse splits content into raw diagnostic records.
//
// The whole content is first tried as a single JSON value: an array yields
// its elements, an object yields itself, anything else yields nothing. If the
// content is not one valid JSON value it is read as NDJSON, one value per
// line, skipping blank and unparseable lines. Only JSON objects are returned.
func Parse(content []byte) ([]gjson.Result, LoadStats) {
	var stats LoadStats

	if len(bytes.TrimSpace(content)) == 0 {
		stats.Mode = ModeEmpty
		return nil, stats
	}

	var candidates []gjson.Result
	if gjson.ValidBytes(content) {
		stats.Mode = ModeDocument
		doc := gjson.ParseBytes(content)
		switch {
		case doc.IsArray():
			candidates = doc.Array()
		case doc.IsObject():
			candidates = []gjson.Result{doc}
		}
	} else {
		stats.Mode = ModeNDJSON
		candidates, stats.InvalidLines = parseLines(content)
	}

	stats.Candidates = len(candidates)
	records := make([]gjson.Result, 0, len(candidates))
	for _, c := range candidates {
		if !c.IsObject() {
			stats.NonObjects++
			continue
		}
		records = append(records, c)
	}
	stats.Records = len(records)

	return records, stats
}

// parseLines parses newline-delimited JSON. Raw JSON never contains an
// unescaped CR or LF, so both are treated as line boundaries.
func parseLines(content []byte) ([]gjson.Result, int) {
	var values []gjson.Result
	invalid := 0

	lines := bytes.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			invalid++
			continue
		}
		values = append(values, gjson.ParseBytes(line))
	}

	return values, invalid
}
