package dialog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Filter is a named group of file extensions. The extension "*" matches any file.
type Filter struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions" toml:"extensions"`
}

// FilterSet is an ordered list of filters; the first one is preselected.
type FilterSet []Filter

// TextExtensions are the source and text formats offered by default.
var TextExtensions = []string{
	"txt", "md", "js", "ts", "html", "css", "json", "py", "java", "cpp", "c",
	"h", "rs", "go", "php", "rb", "swift", "kt", "dart", "vue", "jsx", "tsx",
}

// DefaultFilters returns the text allow-list plus an "All Files" wildcard.
func DefaultFilters() FilterSet {
	exts := make([]string, len(TextExtensions))
	copy(exts, TextExtensions)
	return FilterSet{
		{Name: "Text Files", Extensions: exts},
		{Name: "All Files", Extensions: []string{"*"}},
	}
}

// Patterns returns glob patterns for the filter ("*.txt", or "*" for the wildcard).
func (f Filter) Patterns() []string {
	patterns := make([]string, 0, len(f.Extensions))
	for _, ext := range f.Extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "*" {
			patterns = append(patterns, "*")
			continue
		}
		patterns = append(patterns, "*."+ext)
	}
	return patterns
}

// Match reports whether the base name of path matches one of the filter's patterns.
// Matching is case-insensitive.
func (f Filter) Match(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, pattern := range f.Patterns() {
		ok, err := doublestar.Match(strings.ToLower(pattern), name)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// Allows reports whether any filter in the set matches path. An empty set allows everything.
func (s FilterSet) Allows(path string) bool {
	if len(s) == 0 {
		return true
	}
	for _, f := range s {
		if f.Match(path) {
			return true
		}
	}
	return false
}

// Validate checks that every filter is named and has well-formed extensions.
func (s FilterSet) Validate() error {
	for i, f := range s {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("filter %d: name required", i)
		}
		if len(f.Extensions) == 0 {
			return fmt.Errorf("filter %q: at least one extension required", f.Name)
		}
		for _, pattern := range f.Patterns() {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("filter %q: invalid extension pattern %q", f.Name, pattern)
			}
		}
	}
	return nil
}

type filterFile struct {
	Filters FilterSet `yaml:"filters" toml:"filters"`
}

// LoadFilters reads a filter set from a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadFilters(path string) (FilterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filters file: %w", err)
	}
	return ParseFilters(filepath.Ext(path), data)
}

// ParseFilters decodes a filter set; format is the file extension including the dot.
func ParseFilters(format string, data []byte) (FilterSet, error) {
	var parsed filterFile
	switch strings.ToLower(format) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse YAML filters: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse TOML filters: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported filters format %q", format)
	}

	if len(parsed.Filters) == 0 {
		return nil, fmt.Errorf("filters file defines no filters")
	}
	if err := parsed.Filters.Validate(); err != nil {
		return nil, err
	}
	return parsed.Filters, nil
}
