package unitfile

type valueKind int

const (
	kindInvalid valueKind = iota
	kindScalar
	kindMulti
)

// Value is a directive value used when building documents from mappings. It
// is either a single string, emitted as one Key=Value line, or an ordered
// list of strings, emitted as one line per element.
//
// The zero Value is invalid; construct values with Scalar or Multi.
type Value struct {
	kind   valueKind
	scalar string
	list   []string
}

// Scalar returns a Value holding a single string.
func Scalar(s string) Value {
	return Value{kind: kindScalar, scalar: s}
}

// Multi returns a Value holding an ordered list of strings. An empty list
// emits no directive lines at all.
func Multi(values ...string) Value {
	return Value{kind: kindMulti, list: values}
}

// Strings returns the directive lines the value produces, in order. The
// second return is false for the zero (invalid) Value.
func (v Value) Strings() ([]string, bool) {
	switch v.kind {
	case kindScalar:
		return []string{v.scalar}, true
	case kindMulti:
		return v.list, true
	default:
		return nil, false
	}
}
