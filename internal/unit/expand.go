package unit

import (
	"fmt"
	"strings"

	"github.com/tools4digits/sysunit/internal/unitfile"
)

// UnresolvedPlaceholderError reports a {placeholder} with no matching
// variable during expansion.
type UnresolvedPlaceholderError struct {
	Placeholder string // The variable name inside the braces
	In          string // The string the placeholder appeared in
}

// Error implements the error interface.
func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder {%s} in %q", e.Placeholder, e.In)
}

// ExpandString substitutes {name} placeholders in s from vars. Doubled
// braces escape literals: "{{" yields "{" and "}}" yields "}". A
// placeholder with no matching variable or an unbalanced brace is an error.
func ExpandString(s string, vars map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch s[i] {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return "", &UnresolvedPlaceholderError{Placeholder: s[i+1:], In: s}
			}
			name := s[i+1 : i+end]
			value, ok := vars[name]
			if !ok {
				return "", &UnresolvedPlaceholderError{Placeholder: name, In: s}
			}
			b.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", &UnresolvedPlaceholderError{Placeholder: "", In: s}
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

// Expand returns a copy of the unit with {placeholder} variables in the
// unit name and every directive value substituted from vars. Section names
// and directive keys are left untouched. The receiver is not modified.
func (u *Unit) Expand(vars map[string]string) (*Unit, error) {
	name, err := ExpandString(u.Name.FullName(), vars)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseName(name)
	if err != nil {
		return nil, err
	}

	out := &Unit{
		Name:     parsed,
		Doc:      unitfile.New(parsed.FullName()),
		internal: make(map[string]bool),
	}
	for section := range u.internal {
		out.internal[section] = true
	}
	for _, s := range u.Doc.Sections() {
		target := out.Doc.Section(s.Name)
		for _, e := range s.Entries {
			value, err := ExpandString(e.Value, vars)
			if err != nil {
				return nil, err
			}
			target.Add(e.Key, value)
		}
	}
	return out, nil
}

// ExpandAll applies Expand once per variable set, producing one concrete
// unit per set in order. With no sets the unit is returned as the single
// element, unexpanded.
func (u *Unit) ExpandAll(varSets []map[string]string) ([]*Unit, error) {
	if len(varSets) == 0 {
		return []*Unit{u}, nil
	}
	units := make([]*Unit, 0, len(varSets))
	for _, vars := range varSets {
		expanded, err := u.Expand(vars)
		if err != nil {
			return nil, err
		}
		units = append(units, expanded)
	}
	return units, nil
}
