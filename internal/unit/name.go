// Package unit models systemd units as sysunit manages them: a parsed
// identity plus the document that renders to the unit file. On top of the
// raw file format it layers two conventions: sections flagged internal are
// stored under an "x-" prefix so systemd skips them, and names and directive
// values may carry {placeholder} variables expanded at apply time.
package unit

import (
	"fmt"
	"regexp"
	"strings"

	sdunit "github.com/coreos/go-systemd/v22/unit"
)

// Name identifies a systemd unit: its base name, its unit type, and whether
// it is a template taking an instance argument.
type Name struct {
	Base     string
	Type     string
	Template bool
}

// InvalidNameError reports a unit name sysunit cannot manage.
type InvalidNameError struct {
	Name   string // The name as given
	Reason string // What the name violated
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid unit name %q: %s", e.Name, e.Reason)
}

var unitTypePattern = regexp.MustCompile(`^[a-z]+$`)

// ParseName parses a unit name of the form "base", "base.type" or
// "base@.type". The type defaults to "service" when no extension is given.
// At most one "." and one "@" are allowed, and the "@" must close the base
// name. Placeholder braces are permitted in the base so that batch units
// can be parsed before expansion.
func ParseName(name string) (Name, error) {
	if name == "" {
		return Name{}, &InvalidNameError{Name: name, Reason: "empty name"}
	}
	if strings.Count(name, ".") > 1 {
		return Name{}, &InvalidNameError{Name: name, Reason: `at most one "." separator is allowed`}
	}

	base := name
	unitType := "service"
	if idx := strings.Index(name, "."); idx >= 0 {
		base = name[:idx]
		unitType = name[idx+1:]
		if unitType == "" {
			return Name{}, &InvalidNameError{Name: name, Reason: "empty unit type"}
		}
		if !unitTypePattern.MatchString(unitType) {
			return Name{}, &InvalidNameError{Name: name, Reason: fmt.Sprintf("malformed unit type %q", unitType)}
		}
	}

	if strings.Count(base, "@") > 1 {
		return Name{}, &InvalidNameError{Name: name, Reason: `at most one "@" is allowed`}
	}
	template := false
	if idx := strings.Index(base, "@"); idx >= 0 {
		if idx != len(base)-1 {
			return Name{}, &InvalidNameError{Name: name, Reason: `"@" must close the base name`}
		}
		template = true
		base = base[:idx]
	}

	if base == "" {
		return Name{}, &InvalidNameError{Name: name, Reason: "empty base name"}
	}
	if strings.ContainsAny(base, "/ \t\r\n") {
		return Name{}, &InvalidNameError{Name: name, Reason: "base name contains a path separator or whitespace"}
	}

	return Name{Base: base, Type: unitType, Template: template}, nil
}

// FullName returns the on-disk file name: the base, the template marker
// when present, and the type extension.
func (n Name) FullName() string {
	if n.Template {
		return n.Base + "@." + n.Type
	}
	return n.Base + "." + n.Type
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return n.FullName()
}

// Instance returns the concrete unit name for an instance of a template
// unit, escaping the instance string the way systemd-escape does.
func (n Name) Instance(instance string) (string, error) {
	if !n.Template {
		return "", &InvalidNameError{Name: n.FullName(), Reason: "not a template unit"}
	}
	if instance == "" {
		return "", &InvalidNameError{Name: n.FullName(), Reason: "empty instance name"}
	}
	return n.Base + "@" + sdunit.UnitNameEscape(instance) + "." + n.Type, nil
}
