package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Source loads a ledger file into l.
type Source interface {
	Load(l *Ledger, path string) error
}

// SourceFunc is a function that implements Source
type SourceFunc func(l *Ledger, path string) error

func (f SourceFunc) Load(l *Ledger, path string) error {
	return f(l, path)
}

// sources is the registry of available file formats
var sources = map[string]Source{}

// sourceExtensions maps file extensions to a registered format name
var sourceExtensions = map[string]string{}

// RegisterSource registers a source under a format name and the file
// extensions it handles (with leading dot).
func RegisterSource(name string, s Source, extensions ...string) {
	sources[name] = s
	for _, ext := range extensions {
		sourceExtensions[strings.ToLower(ext)] = name
	}
}

// GetSource returns the source for the given format
func GetSource(format string) (Source, error) {
	s, ok := sources[format]
	if !ok {
		return nil, fmt.Errorf("unknown source format: %s (available: %v)", format, AvailableSources())
	}
	return s, nil
}

// AvailableSources returns the registered format names, sorted
func AvailableSources() []string {
	var names []string
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownSource returns true if the name is a registered format
func IsKnownSource(name string) bool {
	_, ok := sources[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "xlsx:ledger.xlsx" → ("xlsx", "ledger.xlsx")
// Example: "ledger.json" → ("", "ledger.json")
// Example: "C:\path\ledger.json" → ("", "C:\path\ledger.json") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownSource(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// DetectFormat picks a format from the file extension. Returns empty string
// when the extension is not registered.
func DetectFormat(path string) string {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// LoadFile resolves the format (explicit, prefixed, or by extension) and
// loads path into l.
func LoadFile(l *Ledger, format, arg string) error {
	prefixFormat, path := ParseFileArg(arg)
	if format == "" {
		format = prefixFormat
	}
	if format == "" {
		format = DetectFormat(path)
	}
	if format == "" {
		return fmt.Errorf("cannot determine format of %s (use one of %v as prefix, e.g. json:%s)", path, AvailableSources(), path)
	}

	s, err := GetSource(format)
	if err != nil {
		return err
	}
	return s.Load(l, path)
}

func init() {
	RegisterSource("json", SourceFunc(LoadJSONFile), ".json")
	RegisterSource("xlsx", SourceFunc(LoadXLSXFile), ".xlsx")
}
