package resources

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tables bundles the static lookup tables. It is read-only after Load.
type Tables struct {
	Prefixes  *PrefixTable
	Classes   *ClassFrequencyTable
	Blacklist Blacklist
}

// Paths locates the three JSON resource files.
type Paths struct {
	Blacklist string
	Prefixes  string
	Classes   string
}

// Load reads the resource files. The prefix table is loaded first because the
// blacklist and class keys may be written in compact form.
func Load(paths Paths) (*Tables, error) {
	var prefixes map[string]string
	if err := readJSON(paths.Prefixes, &prefixes); err != nil {
		return nil, err
	}
	pt := NewPrefixTable(prefixes)

	var blacklist []string
	if err := readJSON(paths.Blacklist, &blacklist); err != nil {
		return nil, err
	}

	var classes map[string]int
	if err := readJSON(paths.Classes, &classes); err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("class frequency table %s is empty", paths.Classes)
	}

	return &Tables{
		Prefixes:  pt,
		Classes:   NewClassFrequencyTable(classes, pt),
		Blacklist: NewBlacklist(blacklist, pt),
	}, nil
}

// WriteClasses persists a class frequency table, compacting keys through prefixes.
func WriteClasses(path string, counts map[string]int, prefixes *PrefixTable) error {
	out := make(map[string]int, len(counts))
	for class, n := range counts {
		out[prefixes.Compact(class)] = n
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode class table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write class table '%s': %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resource file '%s': %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse resource file '%s': %w", path, err)
	}
	return nil
}
