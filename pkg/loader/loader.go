package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadData loads records from a string, auto-detecting the format.
// Supports:
// - JWT tokens (3-part base64url-encoded tokens)
// - Markdown pipe tables
// - YAML: single document or multi-document (separated by ---)
// - Newline-delimited JSON (NDJSON): one JSON object per line
// - TOML, including [[array-of-tables]] inputs
// - CSV with a header row
// - Single JSON object/array
//
// Every format ends up as a Set: one record per row/document/object, plus
// the header order the source implies.
func LoadData(input string) (*Set, error) {
	return LoadDataWithLogger(input, logr.Discard())
}

// LoadDataWithLogger is like LoadData but records which format the content
// heuristics settled on.
func LoadDataWithLogger(input string, lgr logr.Logger) (*Set, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	set, format, err := loadAutoDetect(input)
	if err != nil {
		return nil, err
	}
	lgr.V(1).Info("loaded records", "format", format, "records", len(set.Records), "fields", len(set.Headers))
	return set, nil
}

// loadAutoDetect runs the detection chain, most restrictive formats first,
// and reports which one accepted the input.
func loadAutoDetect(input string) (*Set, string, error) {
	// Check for JWT first (single-line, dot-separated base64url)
	if IsJWT(input) {
		set, err := loadJWT(input)
		return set, "jwt", err
	}

	// Markdown pipe tables are checked before YAML: their delimiter row is
	// dashes and would otherwise look like a YAML document separator.
	if isLikelyMarkdownTable(input) {
		set, err := loadMarkdownTable(input)
		return set, "markdown", err
	}

	// Multi-document YAML
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		set, err := loadMultiDocYAML(input)
		return set, "yaml", err
	}

	// Newline-delimited JSON (multiple lines, most starting with '{' or '[')
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		set, err := loadNDJSON(input)
		return set, "ndjson", err
	}

	// Check for TOML before JSON - TOML [section] headers look like JSON
	// arrays but are distinct (e.g., "[server]" vs "[1, 2, 3]")
	if isLikelyTOML(input) {
		set, err := loadTOML(input)
		return set, "toml", err
	}

	// CSV with a header row
	if isLikelyCSV(input) {
		set, err := loadCSV([]byte(input))
		return set, "csv", err
	}

	// Fall back to single JSON object/array
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		set, err := loadJSON(input)
		return set, "json", err
	}

	// Fall back to single YAML document
	set, err := loadYAML(input)
	return set, "yaml", err
}

// LoadBytes parses input bytes into a Set.
func LoadBytes(data []byte) (*Set, error) {
	return LoadData(string(data))
}

// LoadBytesWithLogger is like LoadBytes but accepts a logger for recording
// the detected format.
func LoadBytesWithLogger(data []byte, lgr logr.Logger) (*Set, error) {
	return LoadDataWithLogger(string(data), lgr)
}

// LoadFile reads a file and parses it into a Set.
func LoadFile(path string) (*Set, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger is like LoadFile but accepts a logger. The file
// extension decides the format for .csv and markdown files; everything else
// goes through content auto-detection.
func LoadFileWithLogger(path string, lgr logr.Logger) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		lgr.V(1).Info("loading by extension", "format", "csv", "path", path)
		return loadCSV(data)
	case ".md", ".markdown":
		lgr.V(1).Info("loading by extension", "format", "markdown", "path", path)
		return loadMarkdownTable(string(data))
	}
	return LoadBytesWithLogger(data, lgr)
}

// loadJSON parses a single JSON object or array into a Set.
func loadJSON(input string) (*Set, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return fromDocuments([]any{data})
}

// loadYAML parses a single YAML document into a Set.
func loadYAML(input string) (*Set, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return fromDocuments([]any{data})
}

// loadMultiDocYAML parses YAML with multiple documents (separated by ---),
// one record per document.
func loadMultiDocYAML(input string) (*Set, error) {
	var docs []any
	decoder := yaml.NewDecoder(strings.NewReader(input))

	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return fromDocuments(docs)
}

// loadNDJSON parses newline-delimited JSON, one record per line. Lines that
// are not valid JSON are kept as single-column plain strings.
func loadNDJSON(input string) (*Set, error) {
	lines := strings.Split(input, "\n")
	docs := make([]any, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			// If JSON parsing fails, treat the line as a plain string
			docs = append(docs, line)
			continue
		}
		docs = append(docs, obj)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return fromDocuments(docs)
}

// loadTOML parses TOML content into a Set. A document holding a single
// [[array-of-tables]] key is unwrapped so each table becomes a record.
func loadTOML(input string) (*Set, error) {
	var data any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if m, ok := data.(map[string]any); ok {
		if tables, ok := unwrapTableArray(m); ok {
			return fromDocuments(tables)
		}
	}
	return fromDocuments([]any{data})
}

// unwrapTableArray detects the map shape produced by a TOML document that is
// nothing but one array of tables and returns the tables themselves.
func unwrapTableArray(m map[string]any) ([]any, bool) {
	if len(m) != 1 {
		return nil, false
	}
	for _, v := range m {
		var tables []any
		switch arr := v.(type) {
		case []any:
			tables = arr
		case []map[string]any:
			tables = make([]any, len(arr))
			for i, elem := range arr {
				tables[i] = elem
			}
		default:
			return nil, false
		}
		if len(tables) == 0 {
			return nil, false
		}
		for _, elem := range tables {
			if _, ok := elem.(map[string]any); !ok {
				return nil, false
			}
		}
		return tables, true
	}
	return nil, false
}

// isLikelyNDJSON heuristic: returns true if the input looks like
// newline-delimited JSON. Uses positive JSON matching: a majority of
// non-empty lines must start with '{' or '[' to be classified as NDJSON.
// This prevents YAML files (which may have many bare list items like
// "- name" that lack colons) from being misclassified as NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++

		// Positive match: line looks like a JSON object or array
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}

	// Require multiple lines and a majority must look like JSON
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML heuristic: returns true if the input looks like TOML.
// Detects TOML by looking for section headers [name] or key = value patterns
// that are distinct from YAML syntax.
func isLikelyTOML(input string) bool {
	lines := strings.Split(input, "\n")

	// Pattern for TOML section headers: [section] or [[array]]
	// Supports bare keys, quoted keys, and dotted keys:
	//   [server], [[items]], ["table name"], [database.credentials], [server."host.name"]
	// Excludes JSON arrays like [1, 2, 3] which have spaces/commas without quotes
	sectionPattern := regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

	// Pattern for TOML key = value (not key: value which is YAML)
	// Supports bare keys, quoted keys, and dotted keys:
	//   name = "value", "table name" = "value", database.host = "localhost"
	keyValuePattern := regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)

	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if sectionPattern.MatchString(line) {
			sectionCount++
		}
		if keyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	// Consider it TOML if we have sections, or if majority of lines are key=value
	if sectionCount > 0 {
		return true
	}
	if nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2 {
		return true
	}
	return false
}
