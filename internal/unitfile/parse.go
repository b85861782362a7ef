package unitfile

import (
	"bufio"
	"strings"
)

// Parse reads unit file text into a document. Blank lines and comment lines
// starting with '#' or ';' are dropped. Directive keys and values are
// trimmed of surrounding whitespace. A duplicate section header reopens the
// existing section and appends to it. Any other line that is neither a
// [Section] header nor a Key=Value directive fails with a *ParseError
// carrying the 1-based line number.
func Parse(name, content string) (*Document, error) {
	doc := New(name)
	var current *Section

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		raw := scanner.Text()
		text := strings.TrimSpace(raw)

		switch {
		case text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, ";"):
			continue

		case strings.HasPrefix(text, "["):
			if !strings.HasSuffix(text, "]") {
				return nil, &ParseError{Line: line, Text: raw, Reason: "unterminated section header"}
			}
			sectionName := strings.TrimSpace(text[1 : len(text)-1])
			if sectionName == "" {
				return nil, &ParseError{Line: line, Text: raw, Reason: "empty section name"}
			}
			current = doc.Section(sectionName)

		default:
			parts := strings.SplitN(text, "=", 2)
			if len(parts) != 2 {
				return nil, &ParseError{Line: line, Text: raw, Reason: `missing "=" separator`}
			}
			if current == nil {
				return nil, &ParseError{Line: line, Text: raw, Reason: "directive before any section header"}
			}
			key := strings.TrimSpace(parts[0])
			if key == "" {
				return nil, &ParseError{Line: line, Text: raw, Reason: "empty directive key"}
			}
			current.Add(key, strings.TrimSpace(parts[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
