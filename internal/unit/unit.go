package unit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tools4digits/sysunit/internal/unitfile"
)

// internalPrefix marks sections systemd should ignore. Sections flagged
// internal are renamed with this prefix on the way to disk and renamed back
// on the way in.
const internalPrefix = "x-"

var titleCaser = cases.Title(language.English)

// Unit couples a parsed unit name with the document that renders to its
// unit file, plus the set of sections flagged as internal to sysunit.
type Unit struct {
	Name Name
	Doc  *unitfile.Document

	internal map[string]bool
}

// SectionNameForType returns the conventional configuration section for a
// unit type, such as "Service" for "service". Target units carry no type
// section of their own.
func SectionNameForType(unitType string) string {
	if unitType == "target" {
		return ""
	}
	return titleCaser.String(unitType)
}

// New creates a unit from a name like "backup.service" or "worker@.timer".
// The document is seeded with the [Unit] section and, when the unit type
// has one, its configuration section, so directives can be added right away.
func New(name string) (*Unit, error) {
	parsed, err := ParseName(name)
	if err != nil {
		return nil, err
	}

	u := &Unit{
		Name:     parsed,
		Doc:      unitfile.New(parsed.FullName()),
		internal: make(map[string]bool),
	}
	u.Doc.Section("Unit")
	if section := SectionNameForType(parsed.Type); section != "" {
		u.Doc.Section(section)
	}
	return u, nil
}

// NewService creates a service unit for the given base name.
func NewService(base string) (*Unit, error) {
	return New(base + ".service")
}

// NewTimer creates a timer unit for the given base name.
func NewTimer(base string) (*Unit, error) {
	return New(base + ".timer")
}

// NewTarget creates a target unit for the given base name.
func NewTarget(base string) (*Unit, error) {
	return New(base + ".target")
}

// NewPath creates a path unit for the given base name.
func NewPath(base string) (*Unit, error) {
	return New(base + ".path")
}

// Section returns the named logical section, creating it when absent.
func (u *Unit) Section(name string) *unitfile.Section {
	return u.Doc.Section(name)
}

// MarkInternal flags a section as internal to sysunit. Internal sections
// are written under the "x-" prefix so systemd skips them.
func (u *Unit) MarkInternal(section string) {
	u.internal[section] = true
}

// IsInternal reports whether a section is flagged internal.
func (u *Unit) IsInternal(section string) bool {
	return u.internal[section]
}

// InternalSections returns the logical names of all internal sections, in
// document order.
func (u *Unit) InternalSections() []string {
	var names []string
	for _, s := range u.Doc.Sections() {
		if u.internal[s.Name] {
			names = append(names, s.Name)
		}
	}
	return names
}

// Render serializes the unit to unit file text. Internal sections are
// externalized under the "x-" prefix; the in-memory document is not
// modified.
func (u *Unit) Render() string {
	out := unitfile.New(u.Doc.Name)
	for _, s := range u.Doc.Sections() {
		name := s.Name
		if u.internal[name] {
			name = internalPrefix + name
		}
		target := out.Section(name)
		for _, e := range s.Entries {
			target.Add(e.Key, e.Value)
		}
	}
	return out.String()
}

// Load parses unit file text into a unit. Sections written under the "x-"
// prefix are internalized: the prefix is stripped and the section flagged,
// so a Render/Load round trip preserves the logical section names.
func Load(name, content string) (*Unit, error) {
	parsed, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	raw, err := unitfile.Parse(parsed.FullName(), content)
	if err != nil {
		return nil, err
	}

	u := &Unit{
		Name:     parsed,
		Doc:      unitfile.New(parsed.FullName()),
		internal: make(map[string]bool),
	}
	for _, s := range raw.Sections() {
		logical := s.Name
		if strings.HasPrefix(logical, internalPrefix) {
			logical = strings.TrimPrefix(logical, internalPrefix)
			u.internal[logical] = true
		}
		target := u.Doc.Section(logical)
		for _, e := range s.Entries {
			target.Add(e.Key, e.Value)
		}
	}
	return u, nil
}
