// # internal/stub/signature.go

// Package stub turns docstring signature annotations into .pyi stub
// text: signature parsing, type dependency resolution, namespace tree
// building and rendering.
package stub

import (
	"fmt"
	"regexp"
	"strings"
)

// Signature is one parsed "(param-types) -> return-type" annotation.
// Immutable once parsed.
type Signature struct {
	Raw        string
	ParamTypes []string
	ReturnType string
}

var typeNamePattern = regexp.MustCompile(`\w+(\.\w+)*`)

// ParseSignature splits a raw annotation into its ordered parameter
// types and return type. The parameter segment must be parenthesized
// and the arrow must appear exactly once outside brackets.
func ParseSignature(raw string) (*Signature, error) {
	arrow := arrowIndex(raw)
	if arrow < 0 {
		return nil, NewError(CodeMalformedSignature, fmt.Sprintf("missing -> separator in %q", raw))
	}

	lhs := strings.TrimSpace(raw[:arrow])
	returnType := strings.TrimSpace(raw[arrow+2:])
	if returnType == "" || arrowIndex(returnType) >= 0 {
		return nil, NewError(CodeMalformedSignature, fmt.Sprintf("malformed return type in %q", raw))
	}

	if !strings.HasPrefix(lhs, "(") || !strings.HasSuffix(lhs, ")") {
		return nil, NewError(CodeMalformedSignature, fmt.Sprintf("parameter list not parenthesized in %q", raw))
	}

	paramTypes, err := splitParamTypes(strings.TrimSpace(lhs[1 : len(lhs)-1]))
	if err != nil {
		return nil, err
	}

	return &Signature{Raw: raw, ParamTypes: paramTypes, ReturnType: returnType}, nil
}

// arrowIndex returns the index of the first "->" outside any bracket
// or paren nesting, or -1.
func arrowIndex(s string) int {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '-':
			if depth == 0 && s[i+1] == '>' {
				return i
			}
		}
	}
	return -1
}

// splitParamTypes splits a parameter segment on top level commas only,
// so composite types like Dict[str, int] stay one token.
func splitParamTypes(defs string) ([]string, error) {
	if defs == "" {
		return []string{}, nil
	}

	types := []string{}
	depth := 0
	last := 0
	for i := 0; i < len(defs); i++ {
		switch defs[i] {
		case ',':
			if depth == 0 {
				types = append(types, strings.TrimSpace(defs[last:i]))
				last = i + 1
			}
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth < 0 {
				return nil, NewError(CodeMalformedSignature, fmt.Sprintf("unbalanced brackets in %q", defs))
			}
		}
	}
	if depth != 0 {
		return nil, NewError(CodeMalformedSignature, fmt.Sprintf("unbalanced brackets in %q", defs))
	}
	types = append(types, strings.TrimSpace(defs[last:]))
	return types, nil
}

// TypeNames returns the distinct dotted or bare names referenced in a
// raw signature or type expression, builtins excluded, in discovery
// order.
func TypeNames(raw string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, token := range typeNamePattern.FindAllString(raw, -1) {
		if builtinTypes[token] || seen[token] {
			continue
		}
		seen[token] = true
		names = append(names, token)
	}
	return names
}
