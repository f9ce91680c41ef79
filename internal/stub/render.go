// # internal/stub/render.go
package stub

import (
	"strings"
)

const (
	DefaultLineLength = 79
	DefaultWrapIndent = 8
)

const indentUnit = "    "

// Renderer turns a stub node tree plus an import plan into the final
// text. Rendering is pure: the same tree and plan always produce the
// same bytes.
type Renderer struct {
	LineLength int
	WrapIndent int
}

func NewRenderer(lineLength, wrapIndent int) *Renderer {
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}
	if wrapIndent <= 0 {
		wrapIndent = DefaultWrapIndent
	}
	return &Renderer{LineLength: lineLength, WrapIndent: wrapIndent}
}

// Render assembles the import lines and the tree body. An empty module
// root yields "", the signal that no stub file should be written.
func (r *Renderer) Render(root *Node, plan *ImportPlan) string {
	if root == nil || len(root.Children) == 0 {
		return ""
	}

	var out strings.Builder
	started := false

	if len(plan.TypingNames) > 0 {
		out.WriteString("from typing import " + strings.Join(plan.TypingNames, ", ") + "\n")
		started = true
	}

	if len(plan.Explicit) > 0 {
		if started {
			out.WriteString("\n")
		}
		for _, imp := range plan.Explicit {
			out.WriteString("from " + imp.Module + " import " + imp.Name + "\n")
		}
		started = true
	}

	if len(plan.Modules) > 0 {
		if started {
			out.WriteString("\n")
		}
		for _, module := range plan.Modules {
			out.WriteString("import " + module + "\n")
		}
		started = true
	}

	if started {
		out.WriteString("\n\n")
	}
	out.WriteString(r.renderChildren(root.Children, "\n\n"))

	return out.String()
}

// renderChildren joins sibling blocks: module-scope siblings get two
// blank lines between them, class members one.
func (r *Renderer) renderChildren(children []*Node, separator string) string {
	blocks := make([]string, 0, len(children))
	for _, child := range children {
		blocks = append(blocks, r.renderNode(child))
	}
	return strings.Join(blocks, separator)
}

func (r *Renderer) renderNode(node *Node) string {
	switch node.Kind {
	case NodeClass:
		return r.renderClass(node)
	case NodeFunction:
		return r.renderFunction(node)
	case NodeVariable:
		return r.indent(node.Level-1) + node.Name + ": " + node.VarType + "\n"
	}
	return ""
}

func (r *Renderer) renderClass(node *Node) string {
	var out strings.Builder
	out.WriteString(r.indent(node.Level-1) + "class " + node.Name + ":\n")
	out.WriteString(r.renderChildren(node.Children, "\n"))
	return out.String()
}

func (r *Renderer) renderFunction(node *Node) string {
	indent := r.indent(node.Level - 1)

	params := make([]string, len(node.ParamNames))
	for i, name := range node.ParamNames {
		params[i] = paramStub(name, node.ParamTypes[i], node.Defaults[i])
	}

	line := indent + "def " + node.Name + "(" + strings.Join(params, ", ") + ") -> " + node.ReturnType + ": ...\n"
	if len(line) <= r.LineLength || len(params) == 0 {
		return line
	}

	// Over the limit: one parameter per line at a fixed deeper indent.
	wrapIndent := indent + strings.Repeat(" ", r.WrapIndent)
	var out strings.Builder
	out.WriteString(indent + "def " + node.Name + "(\n")
	out.WriteString(wrapIndent + strings.Join(params, ",\n"+wrapIndent) + "\n")
	out.WriteString(indent + ") -> " + node.ReturnType + ": ...\n")
	return out.String()
}

// paramStub renders one parameter slot. An empty type is the receiver
// placeholder and renders as the bare name; defaults always render as
// the elision marker, never the literal expression.
func paramStub(name, type_ string, hasDefault bool) string {
	out := name
	if type_ != "" {
		out += ": " + type_
	}
	if hasDefault {
		out += " = ..."
	}
	return out
}

func (r *Renderer) indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, level)
}
