// # internal/parser/python.go
package parser

import (
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
		ParsedAt: time.Now(),
	}

	base := filepath.Base(filePath)
	file.Root = &Declaration{
		Kind: KindModule,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	e.walkBody(ctx, root, file.Root)

	return file, nil
}

// walkBody collects the statements of one scope (module, class or
// function body) into decl. Nested definitions recurse so the tree
// mirrors the source nesting.
func (e *PythonExtractor) walkBody(ctx *ExtractionContext, body *sitter.Node, decl *Declaration) {
	if body == nil {
		return
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)

		switch child.Kind() {
		case "import_statement":
			e.extractImport(ctx, child)
		case "import_from_statement":
			e.extractFromImport(ctx, child)
		case "function_definition":
			e.extractFunction(ctx, child, decl)
		case "class_definition":
			e.extractClass(ctx, child, decl)
		case "decorated_definition":
			if def := child.ChildByFieldName("definition"); def != nil {
				switch def.Kind() {
				case "function_definition":
					e.extractFunction(ctx, def, decl)
				case "class_definition":
					e.extractClass(ctx, def, decl)
				}
			}
		case "expression_statement":
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "assignment" || sub.Kind() == "augmented_assignment" {
					e.extractAssignment(ctx, sub, decl)
				}
			}
		case "if_statement", "try_statement", "with_statement", "for_statement", "while_statement":
			// Declarations nested under control flow keep the enclosing scope.
			e.walkBody(ctx, child, decl)
		case "block", "else_clause", "elif_clause", "except_clause", "finally_clause":
			e.walkBody(ctx, child, decl)
		}
	}
}

func (e *PythonExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		if child.Kind() == "dotted_name" || child.Kind() == "identifier" {
			module := ctx.Text(child)
			ctx.File.Imports = append(ctx.File.Imports, Import{
				Module:   module,
				Location: ctx.Location(child),
			})
		} else if child.Kind() == "aliased_import" {
			module := ctx.ChildText(child, "dotted_name")
			if module == "" {
				module = ctx.ChildText(child, "identifier")
			}
			ctx.File.Imports = append(ctx.File.Imports, Import{
				Module:   module,
				Location: ctx.Location(child),
			})
		}
	}
}

func (e *PythonExtractor) extractFromImport(ctx *ExtractionContext, node *sitter.Node) {
	var module string
	var items []string
	isRelative := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			isRelative = true
			module = strings.TrimLeft(ctx.Text(child), ".")
		case "dotted_name", "identifier":
			if !isRelative && module == "" {
				module = ctx.Text(child)
			} else {
				items = append(items, ctx.Text(child))
			}
		case "import_list", "aliased_import":
			e.collectItems(ctx, child, &items)
		case "wildcard_import":
			// "from x import *" exposes no usable names for stubs.
		}
	}

	ctx.File.Imports = append(ctx.File.Imports, Import{
		Module:     module,
		Items:      items,
		IsRelative: isRelative,
		Location:   ctx.Location(node),
	})
}

func (e *PythonExtractor) collectItems(ctx *ExtractionContext, node *sitter.Node, items *[]string) {
	kind := node.Kind()
	if kind == "identifier" || kind == "dotted_name" {
		*items = append(*items, ctx.Text(node))
		return
	}
	if kind == "aliased_import" {
		// "from x import a as b": the importable name is the original one.
		if name := node.Child(0); name != nil {
			*items = append(*items, ctx.Text(name))
		}
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		e.collectItems(ctx, node.Child(i), items)
	}
}

func (e *PythonExtractor) extractFunction(ctx *ExtractionContext, node *sitter.Node, parent *Declaration) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	decl := &Declaration{
		Kind:     KindFunction,
		Name:     name,
		Location: ctx.Location(node),
	}

	e.extractParameters(ctx, node.ChildByFieldName("parameters"), decl)

	body := node.ChildByFieldName("body")
	decl.Docstring = e.docstring(ctx, body)
	e.walkBody(ctx, body, decl)

	parent.Children = append(parent.Children, decl)
}

func (e *PythonExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node, parent *Declaration) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	decl := &Declaration{
		Kind:     KindClass,
		Name:     name,
		Location: ctx.Location(node),
	}

	body := node.ChildByFieldName("body")
	decl.Docstring = e.docstring(ctx, body)
	e.walkBody(ctx, body, decl)

	parent.Children = append(parent.Children, decl)
}

func (e *PythonExtractor) extractParameters(ctx *ExtractionContext, params *sitter.Node, decl *Declaration) {
	if params == nil {
		return
	}

	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)

		switch child.Kind() {
		case "identifier":
			decl.Params = append(decl.Params, Param{
				Name:     ctx.Text(child),
				Location: ctx.Location(child),
			})
		case "typed_parameter":
			decl.Params = append(decl.Params, Param{
				Name:     ctx.ChildText(child, "identifier"),
				Location: ctx.Location(child),
			})
		case "default_parameter", "typed_default_parameter":
			decl.Params = append(decl.Params, Param{
				Name:       ctx.Text(child.ChildByFieldName("name")),
				HasDefault: true,
				Location:   ctx.Location(child),
			})
			if value := child.ChildByFieldName("value"); value != nil {
				decl.DefaultLocations = append(decl.DefaultLocations, ctx.Location(value))
			}
		}
		// Splat parameters and positional/keyword separators carry no
		// slot in the annotated parameter list.
	}
}

func (e *PythonExtractor) extractAssignment(ctx *ExtractionContext, node *sitter.Node, decl *Declaration) {
	left := node.ChildByFieldName("left")
	if left == nil {
		return
	}

	assign := Assignment{
		Line:     ctx.LineText(node),
		Location: ctx.Location(node),
	}

	switch left.Kind() {
	case "identifier":
		assign.Target = ctx.Text(left)
	case "attribute":
		object := left.ChildByFieldName("object")
		if object == nil || ctx.Text(object) != "self" {
			return
		}
		assign.Target = ctx.Text(left.ChildByFieldName("attribute"))
		assign.IsReceiverAttr = true
	default:
		return
	}

	decl.Assignments = append(decl.Assignments, assign)
}

// docstring returns the unquoted text of a body's leading string
// expression, or "".
func (e *PythonExtractor) docstring(ctx *ExtractionContext, body *sitter.Node) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str.Kind() != "string" {
		return ""
	}
	return unquoteString(ctx.Text(str))
}

func unquoteString(s string) string {
	// Drop string prefixes (r, b, u, f and combinations).
	s = strings.TrimLeft(s, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
