// Package unitfile implements the systemd unit file format. A document is
// an ordered list of sections, each an ordered list of Key=Value directives,
// serialized to and parsed from INI-style text.
//
// Documents preserve section order, directive order within a section, and
// repeated directive keys. Comments are not part of the model: parsing drops
// them and serialization never emits them, so a parse/serialize round trip
// of a commented file loses the comments.
package unitfile

import (
	"io"
	"sort"
	"strings"
)

// Entry is a single Key=Value directive line.
type Entry struct {
	Key   string
	Value string
}

// Section is a named group of directives. Entries keep their insertion
// order, and the same key may appear any number of times.
type Section struct {
	Name    string
	Entries []Entry
}

// Document is an ordered collection of sections representing one unit file.
type Document struct {
	// Name identifies the document in logs and errors. It is not part of
	// the serialized output.
	Name string

	sections []*Section
}

// New returns an empty document with the given name.
func New(name string) *Document {
	return &Document{Name: name}
}

// FromMapping builds a document from a two-level mapping of section name to
// directive key to value. Go maps carry no order, so sections and keys are
// emitted in sorted order; list values keep their element order. Use New and
// Section.Add when authored order matters.
func FromMapping(name string, mapping map[string]map[string]Value) (*Document, error) {
	doc := New(name)

	sectionNames := make([]string, 0, len(mapping))
	for sectionName := range mapping {
		sectionNames = append(sectionNames, sectionName)
	}
	sort.Strings(sectionNames)

	for _, sectionName := range sectionNames {
		section := doc.Section(sectionName)
		directives := mapping[sectionName]

		keys := make([]string, 0, len(directives))
		for key := range directives {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			lines, ok := directives[key].Strings()
			if !ok {
				return nil, &InvalidValueError{Section: sectionName, Key: key}
			}
			for _, line := range lines {
				section.Add(key, line)
			}
		}
	}
	return doc, nil
}

// Section returns the section with the given name, appending a new empty
// section if none exists yet.
func (d *Document) Section(name string) *Section {
	if s, ok := d.Lookup(name); ok {
		return s
	}
	s := &Section{Name: name}
	d.sections = append(d.sections, s)
	return s
}

// Lookup returns the section with the given name, if present.
func (d *Document) Lookup(name string) (*Section, bool) {
	for _, s := range d.sections {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// HasSection reports whether a section with the given name exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

// Sections returns the document's sections in order. The returned slice is
// shared with the document; callers must not modify it.
func (d *Document) Sections() []*Section {
	return d.sections
}

// String renders the document as unit file text: each section header on its
// own line, each directive as Key=Value, and one blank line between
// consecutive sections.
func (d *Document) String() string {
	var b strings.Builder
	for i, section := range d.sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		b.WriteString(section.Name)
		b.WriteString("]\n")
		for _, e := range section.Entries {
			b.WriteString(e.Key)
			b.WriteByte('=')
			b.WriteString(e.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteTo writes the serialized document to w. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Add appends a directive to the section, after any existing entries for
// the same key.
func (s *Section) Add(key, value string) {
	s.Entries = append(s.Entries, Entry{Key: key, Value: value})
}

// Set replaces the directives for key with a single value. The first
// existing entry keeps its position and any further entries for the same
// key are removed; a missing key is appended.
func (s *Section) Set(key, value string) {
	replaced := false
	kept := s.Entries[:0]
	for _, e := range s.Entries {
		if e.Key != key {
			kept = append(kept, e)
			continue
		}
		if !replaced {
			e.Value = value
			kept = append(kept, e)
			replaced = true
		}
	}
	s.Entries = kept
	if !replaced {
		s.Add(key, value)
	}
}

// Value returns the first value for key.
func (s *Section) Value(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns every value for key, in order.
func (s *Section) Values(key string) []string {
	var values []string
	for _, e := range s.Entries {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

// Has reports whether the section contains at least one entry for key.
func (s *Section) Has(key string) bool {
	_, ok := s.Value(key)
	return ok
}
