// # internal/stub/stub.go
package stub

import (
	"pystub/internal/parser"
)

const DefaultSignatureField = "sig"

// Generator produces the stub text for parsed source units. Every call
// builds its resolver and tree from scratch, so one Generator may be
// shared by concurrent callers without synchronization.
type Generator struct {
	SignatureField   string
	ExtraTypingNames []string
	LineLength       int
	WrapIndent       int
	Fields           FieldExtractor
}

func NewGenerator(fields FieldExtractor) *Generator {
	return &Generator{
		SignatureField: DefaultSignatureField,
		LineLength:     DefaultLineLength,
		WrapIndent:     DefaultWrapIndent,
		Fields:         fields,
	}
}

// Generate returns the stub text for one source unit, or "" when no
// declaration qualifies for a stub. Unresolvable type names and
// malformed signatures fail the whole unit.
func (g *Generator) Generate(file *parser.File) (string, error) {
	resolver := NewTypeResolver(g.ExtraTypingNames)
	builder := NewTreeBuilder(resolver, g.Fields, g.SignatureField)

	root, err := builder.Build(file)
	if err != nil {
		return "", withPath(err, file.Path)
	}

	if len(root.Children) == 0 {
		return "", nil
	}

	imported := NewImportedNames()
	for _, imp := range file.Imports {
		for _, item := range imp.Items {
			imported.Add(item, imp.Module)
		}
	}

	plan, err := resolver.Resolve(builder.LocallyDefined(), imported)
	if err != nil {
		return "", withPath(err, file.Path)
	}

	return NewRenderer(g.LineLength, g.WrapIndent).Render(root, plan), nil
}

func withPath(err error, path string) error {
	if de, ok := err.(*DomainError); ok {
		return de.WithContext(CtxPath, path)
	}
	return err
}
