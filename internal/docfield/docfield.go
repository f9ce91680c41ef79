// # internal/docfield/docfield.go

// Package docfield extracts reST-style field lists from docstrings.
package docfield

import (
	"regexp"
	"strings"
)

var fieldPattern = regexp.MustCompile(`^:([^:\s][^:]*):(?:\s+(.*))?$`)

// Fields returns the field names and bodies of a docstring's field
// list. A field starts at a line of the form ":name: body"; lines
// indented deeper than the field marker continue the body until a
// blank line or the next field. Later occurrences of a name overwrite
// earlier ones.
func Fields(docstring string) map[string]string {
	fields := make(map[string]string)

	var name string
	var indent int
	var body []string
	flush := func() {
		if name != "" {
			fields[name] = strings.Join(body, " ")
		}
		name = ""
		body = nil
	}

	for _, line := range strings.Split(docstring, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := fieldPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			name = strings.TrimSpace(m[1])
			indent = indentOf(line)
			if m[2] != "" {
				body = append(body, strings.TrimSpace(m[2]))
			}
			continue
		}

		if name == "" {
			continue
		}
		if trimmed == "" || indentOf(line) <= indent {
			flush()
			continue
		}
		body = append(body, trimmed)
	}
	flush()

	return fields
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
