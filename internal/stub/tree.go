// # internal/stub/tree.go
package stub

import (
	"fmt"
	"regexp"
	"sort"

	"pystub/internal/parser"
)

type NodeKind int

const (
	NodeModule NodeKind = iota
	NodeClass
	NodeFunction
	NodeVariable
)

// Node is one stub declaration. Children are owned by their parent;
// Level records the nesting depth so no back reference is needed.
type Node struct {
	Kind  NodeKind
	Name  string
	Level int
	// Function nodes: names paired to types after receiver adjustment.
	// An empty type renders as a bare parameter name.
	ParamNames []string
	ParamTypes []string
	Defaults   []bool
	ReturnType string
	Inherited  bool // signature borrowed from the enclosing class
	// Variable nodes.
	VarType  string
	Children []*Node
}

// FieldExtractor maps a docstring to its field name/body pairs. It is
// supplied by the docfield collaborator.
type FieldExtractor func(docstring string) map[string]string

// TreeBuilder walks a parsed source unit into a stub node tree,
// registering every referenced type name with the resolver and
// collecting locally defined class names. One builder serves exactly
// one source unit.
type TreeBuilder struct {
	resolver  *TypeResolver
	fields    FieldExtractor
	sigField  string
	varMarker *regexp.Regexp
	local     map[string]bool
}

func NewTreeBuilder(resolver *TypeResolver, fields FieldExtractor, sigField string) *TreeBuilder {
	return &TreeBuilder{
		resolver:  resolver,
		fields:    fields,
		sigField:  sigField,
		varMarker: regexp.MustCompile(`#\s*` + regexp.QuoteMeta(sigField) + `:\s*(.+?)\s*$`),
		local:     make(map[string]bool),
	}
}

// LocallyDefined returns the class names the built tree defines itself.
func (b *TreeBuilder) LocallyDefined() map[string]bool {
	return b.local
}

// Build constructs the stub tree for a parsed file. The module root is
// always returned, even when empty; an empty root means "no output".
func (b *TreeBuilder) Build(file *parser.File) (*Node, error) {
	root := &Node{Kind: NodeModule, Name: file.Root.Name}
	if err := b.buildScope(file.Root, root, nil); err != nil {
		return nil, err
	}
	return root, nil
}

// scopeItem interleaves child declarations and scope assignments back
// into source order.
type scopeItem struct {
	decl     *parser.Declaration
	assign   *parser.Assignment
	location parser.Location
}

func (b *TreeBuilder) buildScope(decl *parser.Declaration, node *Node, classSig *Signature) error {
	items := make([]scopeItem, 0, len(decl.Children)+len(decl.Assignments))
	for _, child := range decl.Children {
		items = append(items, scopeItem{decl: child, location: child.Location})
	}
	for i := range decl.Assignments {
		assign := &decl.Assignments[i]
		items = append(items, scopeItem{assign: assign, location: assign.Location})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].location.Before(items[j].location)
	})

	seenVars := make(map[string]bool)

	for _, item := range items {
		if item.assign != nil {
			// Bare-name targets annotate the scope itself; receiver
			// attributes are handled while processing methods.
			if item.assign.IsReceiverAttr {
				continue
			}
			if v := b.variableNode(item.assign, node.Level+1); v != nil && !seenVars[v.Name] {
				seenVars[v.Name] = true
				node.Children = append(node.Children, v)
			}
			continue
		}

		child := item.decl
		switch child.Kind {
		case parser.KindClass:
			if err := b.buildClass(child, node); err != nil {
				return err
			}
		case parser.KindFunction:
			fn, err := b.buildFunction(child, node, classSig)
			if err != nil {
				return err
			}
			if fn != nil {
				node.Children = append(node.Children, fn)
			}
			if node.Kind == NodeClass {
				b.appendReceiverAttrs(child, node, seenVars)
			}
		}
	}

	return nil
}

func (b *TreeBuilder) buildClass(decl *parser.Declaration, parent *Node) error {
	// A class is always locally defined and always gets a node while
	// building: annotated descendants may still appear.
	b.local[decl.Name] = true

	var classSig *Signature
	if raw, ok := b.fields(decl.Docstring)[b.sigField]; ok {
		sig, err := ParseSignature(raw)
		if err != nil {
			return withDeclaration(err, decl.Name)
		}
		classSig = sig
	}

	node := &Node{Kind: NodeClass, Name: decl.Name, Level: parent.Level + 1}
	if err := b.buildScope(decl, node, classSig); err != nil {
		return err
	}

	// Childless classes contribute no stub lines.
	if len(node.Children) == 0 {
		return nil
	}
	parent.Children = append(parent.Children, node)
	return nil
}

func (b *TreeBuilder) buildFunction(decl *parser.Declaration, parent *Node, classSig *Signature) (*Node, error) {
	var sig *Signature
	inherited := false

	if raw, ok := b.fields(decl.Docstring)[b.sigField]; ok {
		parsed, err := ParseSignature(raw)
		if err != nil {
			return nil, withDeclaration(err, decl.Name)
		}
		sig = parsed
	} else if parent.Kind == NodeClass && decl.Name == "__init__" && classSig != nil {
		// An unannotated constructor borrows its class's signature.
		sig = classSig
		inherited = true
	}

	if sig == nil {
		return nil, nil
	}

	types := make([]string, len(sig.ParamTypes))
	copy(types, sig.ParamTypes)

	// The receiver carries no slot in the annotation: pad with an
	// empty type so names and types pair up.
	if len(decl.Params) > 0 && decl.Params[0].Name == "self" && len(types) == len(decl.Params)-1 {
		types = append([]string{""}, types...)
	}

	if len(types) != len(decl.Params) {
		return nil, withDeclaration(NewError(CodeMalformedSignature,
			fmt.Sprintf("%d parameter types for %d parameters in %q", len(sig.ParamTypes), len(decl.Params), sig.Raw)), decl.Name)
	}

	names := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		names[i] = p.Name
	}

	b.resolver.Register(TypeNames(sig.Raw))

	return &Node{
		Kind:       NodeFunction,
		Name:       decl.Name,
		Level:      parent.Level + 1,
		ParamNames: names,
		ParamTypes: types,
		Defaults:   alignDefaults(decl.Params, decl.DefaultLocations),
		ReturnType: sig.ReturnType,
		Inherited:  inherited,
	}, nil
}

// alignDefaults maps each default expression back to its parameter by
// bisecting its position into the ordered parameter positions. This
// reproduces the trailing-run rule: the Nth-from-the-end default
// belongs to the Nth-from-the-end parameter.
func alignDefaults(params []parser.Param, defaults []parser.Location) []bool {
	out := make([]bool, len(params))
	for _, loc := range defaults {
		i := sort.Search(len(params), func(i int) bool {
			return loc.Before(params[i].Location)
		})
		if i > 0 {
			out[i-1] = true
		}
	}
	return out
}

// appendReceiverAttrs promotes marker-annotated self attributes of a
// method into variable nodes on the owning class.
func (b *TreeBuilder) appendReceiverAttrs(fn *parser.Declaration, class *Node, seen map[string]bool) {
	for i := range fn.Assignments {
		assign := &fn.Assignments[i]
		if !assign.IsReceiverAttr {
			continue
		}
		if v := b.variableNode(assign, class.Level+1); v != nil && !seen[v.Name] {
			seen[v.Name] = true
			class.Children = append(class.Children, v)
		}
	}
}

// variableNode builds a variable stub from an assignment line carrying
// the trailing type marker, or nil when the marker is absent.
func (b *TreeBuilder) variableNode(assign *parser.Assignment, level int) *Node {
	m := b.varMarker.FindStringSubmatch(assign.Line)
	if m == nil {
		return nil
	}
	typeExpr := m[1]
	b.resolver.Register(TypeNames(typeExpr))
	return &Node{Kind: NodeVariable, Name: assign.Target, Level: level, VarType: typeExpr}
}

func withDeclaration(err error, name string) error {
	if de, ok := err.(*DomainError); ok {
		return de.WithContext(CtxDeclaration, name)
	}
	return err
}
