// Package definition loads declarative unit definitions from YAML files.
// A definition names a unit, lists its sections and directives in authored
// order, and optionally carries variable sets that expand one templated
// definition into several concrete units.
package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tools4digits/sysunit/internal/unit"
	"github.com/tools4digits/sysunit/internal/unitfile"
)

// File is the top-level schema of a definition file.
type File struct {
	Units []Definition `yaml:"units"`
}

// Definition describes one unit: its name, its sections, which of those
// sections are internal to sysunit, and the variable sets driving
// placeholder expansion.
type Definition struct {
	Name     string              `yaml:"name"`
	Sections yaml.Node           `yaml:"sections"`
	Internal []string            `yaml:"internal"`
	Vars     []map[string]string `yaml:"vars"`
}

// Build turns the definition into concrete units: the sections are applied
// in authored order, internal sections flagged, and the result expanded
// once per variable set.
func (d *Definition) Build() ([]*unit.Unit, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("definition is missing a unit name")
	}

	u, err := unit.New(d.Name)
	if err != nil {
		return nil, err
	}
	if err := applySections(u, &d.Sections); err != nil {
		return nil, fmt.Errorf("definition %s: %w", d.Name, err)
	}
	for _, section := range d.Internal {
		u.MarkInternal(section)
	}

	units, err := u.ExpandAll(d.Vars)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", d.Name, err)
	}
	return units, nil
}

// applySections walks the sections mapping node directly so that section
// and directive order survive decoding; a plain map would lose it.
func applySections(u *unit.Unit, node *yaml.Node) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("sections must be a mapping of section name to directives")
	}

	for i := 0; i < len(node.Content); i += 2 {
		sectionName := node.Content[i].Value
		sectionNode := node.Content[i+1]

		if sectionNode.Kind != yaml.MappingNode {
			return fmt.Errorf("section %s must be a mapping of directive key to value", sectionName)
		}

		section := u.Section(sectionName)
		for j := 0; j < len(sectionNode.Content); j += 2 {
			key := sectionNode.Content[j].Value
			valueNode := sectionNode.Content[j+1]

			value, err := decodeValue(sectionName, key, valueNode)
			if err != nil {
				return err
			}
			lines, _ := value.Strings()
			for _, line := range lines {
				section.Add(key, line)
			}
		}
	}
	return nil
}

// decodeValue maps a YAML scalar to a Scalar value and a YAML sequence of
// scalars to a Multi value. Anything else is the invalid-kind error.
func decodeValue(section, key string, node *yaml.Node) (unitfile.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return unitfile.Scalar(node.Value), nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return unitfile.Value{}, &unitfile.InvalidValueError{Section: section, Key: key}
			}
			values = append(values, item.Value)
		}
		return unitfile.Multi(values...), nil
	default:
		return unitfile.Value{}, &unitfile.InvalidValueError{Section: section, Key: key}
	}
}

// Parse decodes definition file content.
func Parse(content []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	return &f, nil
}

// Load reads and decodes one definition file.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Path comes from operator configuration
	if err != nil {
		return nil, err
	}
	f, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadPath loads definitions from a file, or from every *.yaml and *.yml
// file directly inside a directory in name order.
func LoadPath(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return Load(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	combined := &File{}
	for _, name := range names {
		f, err := Load(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		combined.Units = append(combined.Units, f.Units...)
	}
	return combined, nil
}

// BuildAll builds every definition in the file, in order.
func (f *File) BuildAll() ([]*unit.Unit, error) {
	var units []*unit.Unit
	for i := range f.Units {
		built, err := f.Units[i].Build()
		if err != nil {
			return nil, err
		}
		units = append(units, built...)
	}
	return units, nil
}
